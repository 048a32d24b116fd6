// Package storage provides the durable single-slot store behind the session:
// one key, one JSON-encoded identity, with interchangeable drivers.
package storage

import (
	"context"
	"fmt"

	"github.com/demoapps/rbac-portal/internal/core/ports"
)

const (
	DriverFile  = "file"
	DriverRedis = "redis"
	DriverMongo = "mongo"
)

// Config selects and configures the session slot driver.
type Config struct {
	Driver   string
	FilePath string
	Redis    RedisConfig
	Mongo    MongoConfig
}

// New builds the session storage for the configured driver, bound to the
// given slot key. An empty driver falls back to the file driver.
func New(ctx context.Context, cfg Config, key string) (ports.SessionStorage, error) {
	switch cfg.Driver {
	case "", DriverFile:
		return NewFileStorage(cfg.FilePath), nil
	case DriverRedis:
		return NewRedisStorage(ctx, cfg.Redis, key)
	case DriverMongo:
		return NewMongoStorage(ctx, cfg.Mongo, key)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
