package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT       JWTConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Activity  ActivityConfig
	Bootstrap BootstrapConfig
}

type JWTConfig struct {
	Secret        string        `env:"JWT_SECRET, required"`
	TokenLifetime time.Duration `env:"JWT_TOKEN_LIFETIME, default=1h"`
	UsernameClaim string        `env:"JWT_CLAIM_USERNAME, default=username"`
	RolesClaim    string        `env:"JWT_CLAIM_ROLES,    default=roles"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=timetracker"`
}

type RedisConfig struct {
	Addr          string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password      string        `env:"REDIS_PASSWORD"`
	DB            int           `env:"REDIS_DB,        default=0"`
	OwnerCacheTTL time.Duration `env:"OWNER_CACHE_TTL, default=10m"`
}

type ActivityConfig struct {
	Workers int `env:"ACTIVITY_WORKERS, default=4"`
}

// BootstrapConfig names an admin account created at startup when both
// fields are set and the username is free.
type BootstrapConfig struct {
	AdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME"`
	AdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// IsDevelopment reports whether the service runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.TokenLifetime <= 0 {
		return nil, fmt.Errorf("config: JWT_TOKEN_LIFETIME must be positive, got %s", cfg.JWT.TokenLifetime)
	}
	return &cfg, nil
}
