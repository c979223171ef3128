// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authentity "task_backend/internal/feature/auth/domain/entity"
	taskadapters "task_backend/internal/feature/task/adapters"
	taskentity "task_backend/internal/feature/task/domain/entity"
	taskusecase "task_backend/internal/feature/task/usecase"
	"task_backend/internal/platform/cache"
)

// Models lists the entities migrated at startup.
func Models() []any {
	return []any{&authentity.User{}, &taskentity.Task{}}
}

// NewTaskRepository creates a TaskRepository implementation.
// If Redis is available, lookups by id are cached in Redis.
// Otherwise, every call goes to the database.
func NewTaskRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) taskusecase.TaskRepository {
	repo := taskadapters.NewTaskGorm(db)
	if rdb != nil {
		return cache.NewCachingTaskRepository(rdb, ttl, repo, "tasks")
	}
	return repo
}
