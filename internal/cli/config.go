package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	backend "github.com/redis/go-redis/v9"

	"github.com/veldtlabs/breadboard/pkg/adapters/file"
	rediscache "github.com/veldtlabs/breadboard/pkg/adapters/redis"
	"github.com/veldtlabs/breadboard/pkg/ports"
)

// ServeConfig holds server settings. Environment variables provide the
// defaults; command-line flags override them.
type ServeConfig struct {
	Addr        string        `env:"BREADBOARD_ADDR" envDefault:":8080"`
	CatalogDir  string        `env:"BREADBOARD_CATALOG" envDefault:"./catalog"`
	RedisURL    string        `env:"BREADBOARD_REDIS_URL"`
	CacheTTL    time.Duration `env:"BREADBOARD_CACHE_TTL" envDefault:"1h"`
	MaxSessions int           `env:"BREADBOARD_MAX_SESSIONS" envDefault:"64"`
	LogLevel    string        `env:"BREADBOARD_LOG_LEVEL" envDefault:"info"`
	Metrics     bool          `env:"BREADBOARD_METRICS" envDefault:"true"`
}

// LoadServeConfig reads the server configuration from the environment.
func LoadServeConfig() (ServeConfig, error) {
	var cfg ServeConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// BuildCatalog opens the file-backed catalog and, when a redis URL is given,
// wraps it with the read-through cache.
func BuildCatalog(dir, redisURL string, ttl time.Duration, logger *slog.Logger) (ports.Catalog, error) {
	fileCat, err := file.New(dir, file.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", dir, err)
	}
	if redisURL == "" {
		return fileCat, nil
	}

	redisOpts, err := backend.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	cacheOpts := []rediscache.Option{rediscache.WithLogger(logger)}
	if ttl > 0 {
		cacheOpts = append(cacheOpts, rediscache.WithTTL(ttl))
	}
	return rediscache.NewFromClient(backend.NewClient(redisOpts), fileCat, cacheOpts...), nil
}
