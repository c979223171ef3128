// Package config loads process configuration from defaults, an optional .env
// file, an optional YAML file, and TASKAPI_* environment variables, in that
// order of increasing precedence.
package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	// EnvPrefix is stripped from environment variable names before mapping.
	// TASKAPI_AUTH_JWT_SECRET maps to auth.jwt_secret.
	EnvPrefix = "TASKAPI_"

	// EnvConfigFile names an optional YAML file to load before the environment.
	EnvConfigFile = "CONFIG_FILE"
)

// Config is the full process configuration, read once at startup.
type Config struct {
	Server   Server   `koanf:"server"`
	Database Database `koanf:"database"`
	Redis    Redis    `koanf:"redis"`
	Auth     Auth     `koanf:"auth"`
	CORS     CORS     `koanf:"cors"`
	Log      Log      `koanf:"log"`
}

type Server struct {
	Addr              string        `koanf:"addr" validate:"required"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

type Database struct {
	Driver         string        `koanf:"driver" validate:"oneof=postgres sqlite"`
	Host           string        `koanf:"host" validate:"required_if=Driver postgres"`
	Port           string        `koanf:"port"`
	User           string        `koanf:"user"`
	Password       string        `koanf:"password"`
	Name           string        `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode        string        `koanf:"sslmode"`
	SQLitePath     string        `koanf:"sqlite_path" validate:"required_if=Driver sqlite"`
	RunMigrations  bool          `koanf:"run_migrations"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

type Redis struct {
	Enabled  bool          `koanf:"enabled"`
	Host     string        `koanf:"host" validate:"required_if=Enabled true"`
	Port     string        `koanf:"port"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TaskTTL  time.Duration `koanf:"task_ttl"`
}

// Auth holds credential and token settings. JWTSecretFile, when set, is read
// and replaces JWTSecret so the key can come from a mounted secret.
type Auth struct {
	JWTSecret     string        `koanf:"jwt_secret" validate:"required,min=32"`
	JWTSecretFile string        `koanf:"jwt_secret_file"`
	TokenTTL      time.Duration `koanf:"token_ttl" validate:"gt=0"`
	Issuer        string        `koanf:"issuer"`
	Audience      string        `koanf:"audience"`
	BcryptCost    int           `koanf:"bcrypt_cost" validate:"min=4,max=31"`
}

type CORS struct {
	AllowOrigins []string `koanf:"allow_origins"`
}

type Log struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `koanf:"format" validate:"omitempty,oneof=json text"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
		},
		Database: Database{
			Driver:         "postgres",
			Host:           "localhost",
			Port:           "5432",
			Name:           "tasks",
			SSLMode:        "disable",
			SQLitePath:     "./tasks.db",
			ConnectTimeout: 60 * time.Second,
		},
		Redis: Redis{
			Port:    "6379",
			TaskTTL: 5 * time.Minute,
		},
		Auth: Auth{
			TokenTTL:   7 * 24 * time.Hour,
			BcryptCost: 10,
		},
		CORS: CORS{
			AllowOrigins: []string{"http://localhost:3000"},
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the configuration. The YAML file named by CONFIG_FILE is optional.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}
	return LoadFile(os.Getenv(EnvConfigFile))
}

// LoadFile reads defaults, then path (if non-empty), then the environment.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKeyToPath(key), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables")
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if cfg.Auth.JWTSecretFile != "" {
		b, err := os.ReadFile(cfg.Auth.JWTSecretFile)
		if err != nil {
			return nil, errors.Wrap(err, "read jwt secret file")
		}
		cfg.Auth.JWTSecret = strings.TrimSpace(string(b))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its validate tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// envKeyToPath maps TASKAPI_SECTION_FIELD_NAME to section.field_name.
func envKeyToPath(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
