// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/transport/http/dto"
	"task_backend/internal/feature/auth/usecase"
	"task_backend/internal/platform/apperr"
	"task_backend/internal/platform/http/response"
)

// ErrInvalidRequest はリクエストボディがJSONとして不正、または必須項目が欠けている場合に返します。
// バインドエラーの詳細はログにのみ出力し、レスポンスには含めません。
var ErrInvalidRequest = apperr.Validation("INVALID_REQUEST", "Invalid request body.")

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler はユーザー登録とログインのHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイント（POST /auth/register）を処理します。
// - リクエストJSONをRegisterReqにバインド
// - ボディ不正・パスワード欠落時は400（"Invalid request body."）を返却
// - ユーザー名が空の場合は400（"Username is required."）を返却
// - ユーザー名重複時は400を返却
// - 成功時はパスワードハッシュを除いたユーザーを200で返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, ErrInvalidRequest, "operation", "register", "bind_error", err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		response.Error(c, err, "operation", "register", "username", req.Username)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// Login はユーザーログインAPIエンドポイント（POST /auth/login）を処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は汎用メッセージで401を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, ErrInvalidRequest, "operation", "login", "bind_error", err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err, "operation", "login", "username", req.Username)
		return
	}

	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}
