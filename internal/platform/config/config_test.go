package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestEnvKeyToPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"TASKAPI_AUTH_JWT_SECRET":          "auth.jwt_secret",
		"TASKAPI_DATABASE_SQLITE_PATH":     "database.sqlite_path",
		"TASKAPI_SERVER_ADDR":              "server.addr",
		"TASKAPI_CORS_ALLOW_ORIGINS":       "cors.allow_origins",
		"TASKAPI_REDIS_TASK_TTL":           "redis.task_ttl",
		"TASKAPI_LOG_LEVEL":                "log.level",
		"TASKAPI_DATABASE_CONNECT_TIMEOUT": "database.connect_timeout",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, envKeyToPath(in), in)
	}
}

func TestLoadFile_DefaultsWithSecretFromEnv(t *testing.T) {
	t.Setenv("TASKAPI_AUTH_JWT_SECRET", testSecret)

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
}

func TestLoadFile_MissingSecretFails(t *testing.T) {
	t.Setenv("TASKAPI_AUTH_JWT_SECRET", "")

	_, err := LoadFile("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTSecret")
}

func TestLoadFile_ShortSecretFails(t *testing.T) {
	t.Setenv("TASKAPI_AUTH_JWT_SECRET", "too-short")

	_, err := LoadFile("")
	assert.Error(t, err)
}

func TestLoadFile_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := strings.Join([]string{
		"server:",
		"  addr: \":9090\"",
		"database:",
		"  driver: sqlite",
		"  sqlite_path: /tmp/tasks.db",
		"auth:",
		"  jwt_secret: " + testSecret,
		"  bcrypt_cost: 12",
		"  token_ttl: 24h",
		"log:",
		"  level: debug",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("TASKAPI_AUTH_BCRYPT_COST", "6")
	t.Setenv("TASKAPI_REDIS_TASK_TTL", "90s")
	t.Setenv("TASKAPI_CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/tasks.db", cfg.Database.SQLitePath)
	assert.Equal(t, 6, cfg.Auth.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 90*time.Second, cfg.Redis.TaskTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile_SecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jwt_secret")
	require.NoError(t, os.WriteFile(path, []byte(testSecret+"\n"), 0o600))
	t.Setenv("TASKAPI_AUTH_JWT_SECRET_FILE", path)

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
}

func TestLoadFile_MissingYAMLFails(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"bcrypt cost too low", func(c *Config) { c.Auth.BcryptCost = 2 }},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"redis enabled without host", func(c *Config) { c.Redis.Enabled = true }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			cfg.Auth.JWTSecret = testSecret
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
