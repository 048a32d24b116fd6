package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// APIBaseURL is the origin the portal's internal API client talks to. In
	// demo mode no packet ever leaves the process: the simulated backend
	// resolves these requests before they reach a real transport.
	APIBaseURL string `env:"API_BASE_URL, default=http://rbac-portal.internal"`

	// BackendDelay is the artificial latency applied to every simulated
	// response, success and failure alike.
	BackendDelay time.Duration `env:"BACKEND_DELAY, default=500ms"`

	// SeedFile optionally replaces the stock two-user roster with a YAML file.
	SeedFile string `env:"SEED_FILE"`

	// SessionKey is the durable slot name holding the JSON-encoded identity.
	SessionKey string `env:"SESSION_KEY, default=currentUser"`

	Storage StorageConfig
}

type StorageConfig struct {
	Driver   string `env:"STORAGE_DRIVER, default=file"`
	FilePath string `env:"SESSION_FILE,   default=.rbac-portal/session.json"`

	Redis RedisConfig
	Mongo MongoConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=rbac_portal"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
