// Package db opens the GORM connection used by every store.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task_backend/internal/platform/config"
)

// Config is the database section of the process configuration.
type Config = config.Database

// Opener opens a connection for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// BuildDSN builds a PostgreSQL keyword/value connection string.
func BuildDSN(cfg Config) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, errors.Wrapf(err, "db connect failed after %s (%d attempts)", timeout, attempt)
		}
		slog.Warn("db connect failed, retrying", "attempt", attempt, "error", err)
		time.Sleep(retryInterval)
	}
}

// Open connects using cfg.Driver and, when cfg.RunMigrations is set, migrates models.
func Open(cfg Config, logger *slog.Logger, models ...any) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(logger),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, errors.Wrap(err, "open sqlite")
		}
		slog.Info("using sqlite", "path", cfg.SQLitePath)
	default:
		db, err = ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gormCfg)
		})
		if err != nil {
			return nil, err
		}
		slog.Info("connected to postgres", "host", cfg.Host, "port", cfg.Port, "name", cfg.Name)
	}

	// マイグレーション（User, Task など）
	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, errors.Wrap(err, "migrate")
		}
	}
	return db, nil
}
