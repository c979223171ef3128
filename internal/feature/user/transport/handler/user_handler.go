// Package handler はuserリソースのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/domain/entity"
	authdto "task_backend/internal/feature/auth/transport/http/dto"
	"task_backend/internal/feature/user/domain"
	"task_backend/internal/feature/user/transport/http/dto"
	"task_backend/internal/platform/http/response"
)

// UserUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	Create(ctx context.Context, user *entity.User, password string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, id uint, user *entity.User) error
	Delete(ctx context.Context, id uint) error
}

// UserHandler はユーザーに関するHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler は新しい UserHandler を作成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Create はユーザー作成APIエンドポイント（POST /user）を処理します。
// - リクエストJSONをUserReqにバインドできない場合は400（"User data is invalid."）を返却
// - ユーザー名重複時は400を返却
// - 成功時はLocationヘッダー付きで201を返却
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domain.ErrUserDataInvalid, "operation", "create_user", "bind_error", err)
		return
	}

	created, err := h.users.Create(c.Request.Context(), req.ToEntity(), req.Password)
	if err != nil {
		response.Error(c, err, "operation", "create_user", "username", req.Username)
		return
	}

	c.Header("Location", "/user/"+strconv.FormatUint(uint64(created.ID), 10))
	c.JSON(http.StatusCreated, authdto.NewUserRes(created))
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.Error(c, err, "operation", "list_users")
		return
	}
	c.JSON(http.StatusOK, authdto.NewUserListRes(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, "operation", "get_user", "user_id", id)
		return
	}
	c.JSON(http.StatusOK, authdto.NewUserRes(user))
}

// GetByUsername はユーザー名でユーザーを検索します（GET /user/username/:username）。
func (h *UserHandler) GetByUsername(c *gin.Context) {
	username := c.Param("username")

	user, err := h.users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err, "operation", "get_user_by_username", "username", username)
		return
	}
	c.JSON(http.StatusOK, authdto.NewUserRes(user))
}

// Update はユーザーを更新し、成功時は204を返します（PUT /user/:id）。
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.UserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domain.ErrUserDataInvalid, "operation", "update_user", "user_id", id, "bind_error", err)
		return
	}

	if err := h.users.Update(c.Request.Context(), id, req.ToEntity()); err != nil {
		response.Error(c, err, "operation", "update_user", "user_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err, "operation", "delete_user", "user_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindID(c *gin.Context) (uint, bool) {
	id, err := api.PathID(c, "id")
	if err != nil {
		slog.Warn("invalid user id", "error", err, "remote_addr", c.ClientIP())
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
		return 0, false
	}
	return id, true
}
