// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"task_backend/internal/feature/task/domain/entity"
	"task_backend/internal/feature/task/usecase"
)

// CachingTaskRepository decorates a TaskRepository with a Redis read-through
// cache of tasks by id. Writes go to the inner repository first and then drop
// the cached entry.
type CachingTaskRepository struct {
	usecase.TaskRepository

	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TaskRepository = (*CachingTaskRepository)(nil)

// NewCachingTaskRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tasks".
// A nil rdb disables caching.
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tasks"
	}
	return &CachingTaskRepository{
		TaskRepository: inner,
		rdb:            rdb,
		ttl:            ttl,
		namespace:      namespace,
	}
}

// FindByID checks the cache first, then falls back to the inner repository.
func (c *CachingTaskRepository) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	if c.rdb == nil {
		return c.TaskRepository.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Task
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Corrupted entry.
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.TaskRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.WarnContext(ctx, "task cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

// Replace updates the task and invalidates its cache entry.
func (c *CachingTaskRepository) Replace(ctx context.Context, t *entity.Task) (bool, error) {
	matched, err := c.TaskRepository.Replace(ctx, t)
	if err != nil {
		return false, err
	}
	c.invalidate(ctx, t.ID)
	return matched, nil
}

// Remove deletes the task and invalidates its cache entry. The entry is dropped
// even when the delete fails, so a stale hit for an absent row is evicted.
func (c *CachingTaskRepository) Remove(ctx context.Context, t *entity.Task) error {
	err := c.TaskRepository.Remove(ctx, t)
	c.invalidate(ctx, t.ID)
	return err
}

// invalidate is best effort: a stale entry expires with the TTL.
func (c *CachingTaskRepository) invalidate(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	key := c.cacheKey(id)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		slog.WarnContext(ctx, "task cache invalidation failed", "key", key, "error", err)
	}
}

func (c *CachingTaskRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", safe(c.namespace), id)
}
