// Package redis はタスクキャッシュで使うRedisクライアントを生成します。
package redis

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"task_backend/internal/platform/config"
)

const pingTimeout = 5 * time.Second

// NewRedisClient はRedisに接続し、PINGで疎通を確認します。
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr, "db", cfg.DB)
	return rdb, nil
}
