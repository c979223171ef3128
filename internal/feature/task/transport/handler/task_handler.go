// Package handler はtaskリソースのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/task/domain"
	"task_backend/internal/feature/task/domain/entity"
	"task_backend/internal/feature/task/transport/http/dto"
	"task_backend/internal/platform/http/response"
	jwtmw "task_backend/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TaskUsecase interface {
	Create(ctx context.Context, t *entity.Task) (*entity.Task, error)
	List(ctx context.Context) ([]entity.Task, error)
	Get(ctx context.Context, id uint) (*entity.Task, error)
	ListByCreator(ctx context.Context, username string) ([]entity.Task, error)
	Update(ctx context.Context, id uint, t *entity.Task) error
	Delete(ctx context.Context, id uint) error
}

// TaskHandler はタスクに関するHTTPリクエストを処理します。
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create はタスク作成APIエンドポイント（POST /task）を処理します。
// - ボディが空、またはタスクとして解釈できない場合は400（"Task data is null."）を返却
// - createdByが空の場合は認証済みユーザー名で補完
// - 成功時は作成したタスクとLocationヘッダー付きで201を返却
func (h *TaskHandler) Create(c *gin.Context) {
	req, err := dto.DecodeTaskReq(c.Request.Body)
	if err != nil || req == nil {
		response.Error(c, domain.ErrTaskRequired, "operation", "create_task", "decode_error", err)
		return
	}

	task := req.ToEntity()
	if task.CreatedBy == "" {
		if username, ok := jwtmw.UsernameFrom(c); ok {
			task.CreatedBy = username
		}
	}

	created, err := h.tasks.Create(c.Request.Context(), task)
	if err != nil {
		response.Error(c, err, "operation", "create_task")
		return
	}

	c.Header("Location", "/task/"+strconv.FormatUint(uint64(created.ID), 10))
	c.JSON(http.StatusCreated, dto.NewTaskRes(created))
}

// List は全タスクの一覧を返します（GET /task）。
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		response.Error(c, err, "operation", "list_tasks")
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskListRes(tasks))
}

// Get は指定IDのタスクを返します（GET /task/:id）。
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, "operation", "get_task", "task_id", id)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}

// ListByUsername は指定ユーザーが作成したタスクを返します（GET /task/username/:username）。
// 該当タスクが無い場合は404（"No tasks found for user: X"）を返却します。
func (h *TaskHandler) ListByUsername(c *gin.Context) {
	username := c.Param("username")

	tasks, err := h.tasks.ListByCreator(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err, "operation", "list_tasks_by_user", "username", username)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskListRes(tasks))
}

// Update はタスク更新APIエンドポイント（PUT /task/:id）を処理します。
// - ボディのIDとパスのIDが異なる場合は400を返却
// - タスクが存在しない場合は404を返却
// - 成功時は204を返却
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	req, err := dto.DecodeTaskReq(c.Request.Body)
	if err != nil || req == nil {
		response.Error(c, domain.ErrTaskRequired, "operation", "update_task", "task_id", id, "decode_error", err)
		return
	}

	if err := h.tasks.Update(c.Request.Context(), id, req.ToEntity()); err != nil {
		response.Error(c, err, "operation", "update_task", "task_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete はタスクを削除し、成功時は204を返します（DELETE /task/:id）。
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err, "operation", "delete_task", "task_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindID(c *gin.Context) (uint, bool) {
	id, err := api.PathID(c, "id")
	if err != nil {
		slog.Warn("invalid task id", "error", err, "remote_addr", c.ClientIP())
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Code: "INVALID_ID", Message: err.Error()})
		return 0, false
	}
	return id, true
}
