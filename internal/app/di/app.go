package di

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"task_backend/internal/app/router"
	authadapters "task_backend/internal/feature/auth/adapters"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskhandler "task_backend/internal/feature/task/transport/handler"
	taskusecase "task_backend/internal/feature/task/usecase"
	userhandler "task_backend/internal/feature/user/transport/handler"
	userusecase "task_backend/internal/feature/user/usecase"
	"task_backend/internal/platform/config"
	"task_backend/internal/platform/http/handler"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/password"
)

// NewRouter wires repositories, usecases and handlers into a ready gin engine.
// rdb may be nil.
func NewRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}

	hasher, err := password.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := jwtmw.NewGenerator(jwtmw.Config{
		Secret:   cfg.Auth.JWTSecret,
		TTL:      cfg.Auth.TokenTTL,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	})
	if err != nil {
		return nil, err
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	taskRepo := NewTaskRepository(rdb, db, cfg.Redis.TaskTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokens)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)
	userUC := userusecase.NewUserUsecase(userRepo, hasher)

	// Handler
	handlers := router.Handlers{
		Auth:   authhandler.NewAuthHandler(authUC),
		Task:   taskhandler.NewTaskHandler(taskUC),
		User:   userhandler.NewUserHandler(userUC),
		Health: handler.NewHealthHandler(sqlDB),
	}

	return router.NewRouter(handlers, tokens, cfg.CORS), nil
}
