package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	TokenStoreFile  = "file"
	TokenStoreRedis = "redis"
)

type Config struct {
	Port           string   `env:"PORT,            default=8080"`
	Env            string   `env:"ENV,             default=development"`
	LogLevel       string   `env:"LOG_LEVEL,       default=info"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=http://localhost:5173"`

	Backend BackendConfig
	Tokens  TokenConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Journal JournalConfig
}

// BackendConfig points at the catalog REST API.
type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8000/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
	// TrailingSlash appends "/" to every backend path; the catalog API
	// redirects or rejects paths without it.
	TrailingSlash bool `env:"BACKEND_TRAILING_SLASH, default=true"`
}

type TokenConfig struct {
	Store    string        `env:"TOKEN_STORE,     default=file"`
	File     string        `env:"TOKEN_FILE,      default=.lenshive/session.yaml"`
	RedisKey string        `env:"TOKEN_REDIS_KEY, default=lenshive:console:token"`
	TTL      time.Duration `env:"TOKEN_TTL,       default=168h"`
}

// MongoConfig enables the activity journal. An empty URI disables it.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=lenshive_console"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type JournalConfig struct {
	Workers int `env:"JOURNAL_WORKERS, default=2"`
	Buffer  int `env:"JOURNAL_BUFFER,  default=256"`
}

// IsDevelopment reports whether the console runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// JournalEnabled reports whether a Mongo URI was configured.
func (c *Config) JournalEnabled() bool {
	return c.Mongo.URI != ""
}

// Validate checks settings go-envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Tokens.Store {
	case TokenStoreFile:
		if c.Tokens.File == "" {
			return errors.New("config: TOKEN_FILE is required for the file token store")
		}
	case TokenStoreRedis:
		if c.Redis.Addr == "" {
			return errors.New("config: REDIS_ADDR is required for the redis token store")
		}
	default:
		return fmt.Errorf("config: unknown TOKEN_STORE %q (want %s or %s)", c.Tokens.Store, TokenStoreFile, TokenStoreRedis)
	}
	if c.Backend.URL == "" {
		return errors.New("config: BACKEND_URL is required")
	}
	if c.Journal.Workers < 1 {
		return errors.New("config: JOURNAL_WORKERS must be at least 1")
	}
	return nil
}

// Load reads a .env file when present, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("config: failed to read .env: %v", err))
	}
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// LoadWith resolves the configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	cfg.Backend.URL = strings.TrimRight(cfg.Backend.URL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
