// Package router assembles the gin engine and its routes.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/task/transport/handler"
	userhandler "task_backend/internal/feature/user/transport/handler"
	"task_backend/internal/platform/config"
	"task_backend/internal/platform/http/handler"
	"task_backend/internal/platform/http/middleware"
	jwtmw "task_backend/internal/platform/jwt"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth   *authhandler.AuthHandler
	Task   *taskhandler.TaskHandler
	User   *userhandler.UserHandler
	Health *handler.HealthHandler
}

func NewRouter(h Handlers, verifier jwtmw.TokenVerifier, corsCfg config.CORS) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	if len(corsCfg.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  corsCfg.AllowOrigins,
			AllowMethods:  []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders: []string{"Location", middleware.HeaderXRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	// ユーザー登録・ログイン（JWT 発行）
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → Authorization ヘッダーに Bearer トークンが必要になる
	tasks := r.Group("/task", jwtmw.AuthRequired(verifier))
	{
		tasks.POST("", h.Task.Create)
		tasks.GET("", h.Task.List)
		tasks.GET("/:id", h.Task.Get)
		tasks.GET("/username/:username", h.Task.ListByUsername)
		tasks.PUT("/:id", h.Task.Update)
		tasks.DELETE("/:id", h.Task.Delete)
	}

	users := r.Group("/user", jwtmw.AuthRequired(verifier))
	{
		users.POST("", h.User.Create)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.GET("/username/:username", h.User.GetByUsername)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	return r
}
