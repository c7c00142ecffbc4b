package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=168h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	MaxAmount float64       `env:"MAX_AMOUNT, default=10000"`

	// AdminEmail, when set, seeds an administrator account awaiting
	// first-login setup.
	AdminEmail string `env:"ADMIN_EMAIL"`
	AdminName  string `env:"ADMIN_NAME"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=siteflow"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	General int64         `env:"RATE_LIMIT_GENERAL, default=100"`
	Auth    int64         `env:"RATE_LIMIT_AUTH,    default=10"`
	Window  time.Duration `env:"RATE_LIMIT_WINDOW,  default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
