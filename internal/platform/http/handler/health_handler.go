// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
)

const pingTimeout = 2 * time.Second

// Pinger は依存ストアへの到達可否を返します。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler は /healthz を処理します。
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler はリクエスト毎にdbを確認するHealthHandlerを生成します。
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// DBがPINGに応答すれば200、応答しなければ503を返し、キャッシュを防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	status, body := http.StatusOK, api.StatusResponse{Status: "ok"}
	if err := h.db.PingContext(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		status, body = http.StatusServiceUnavailable, api.StatusResponse{Status: "unavailable"}
	}

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(status)
	default:
		c.JSON(status, body)
	}
}
