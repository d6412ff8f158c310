package server

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds API server settings, loaded from the environment. A .env
// file in the working directory is read first when present.
type Config struct {
	// Addr is the listen address, ":8080" by default.
	Addr string

	// Env is the deployment environment name ("local", "production").
	Env string

	// CacheBackend selects the pipeline cache: "memory", "file", "redis",
	// or "none".
	CacheBackend string
	CacheDir     string
	CacheSize    int
	RedisURL     string

	// StoreBackend selects analysis persistence: "memory" or "mongo".
	StoreBackend string
	MongoURI     string
	MongoDB      string
}

// LoadConfig reads configuration from the environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:         ":8080",
		Env:          "local",
		CacheBackend: "memory",
		CacheDir:     ".depender-cache",
		CacheSize:    256,
		StoreBackend: "memory",
		MongoDB:      "depender",
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if strings.HasPrefix(port, ":") {
			cfg.Addr = port
		} else {
			cfg.Addr = ":" + port
		}
	}
	if v := strings.TrimSpace(os.Getenv("APP_ENV")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("DEPENDER_CACHE")); v != "" {
		cfg.CacheBackend = v
	}
	if v := strings.TrimSpace(os.Getenv("DEPENDER_CACHE_DIR")); v != "" {
		cfg.CacheDir = v
	}
	if v := strings.TrimSpace(os.Getenv("DEPENDER_CACHE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DEPENDER_STORE")); v != "" {
		cfg.StoreBackend = v
	}
	if v := strings.TrimSpace(os.Getenv("MONGO_URI")); v != "" {
		cfg.MongoURI = v
	}
	if v := strings.TrimSpace(os.Getenv("MONGO_DB")); v != "" {
		cfg.MongoDB = v
	}
	return cfg
}
