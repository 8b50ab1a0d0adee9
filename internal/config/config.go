// Package config defines service configuration structures and loading hooks.
package config

// Store backend names accepted by Config.Store.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the persistence backend: memory or postgres.
	Store string `koanf:"store"`

	// PostgresURL is the connection string used when Store is postgres.
	PostgresURL string `koanf:"postgres_url"`

	// CacheEnabled turns the Redis standings cache on.
	CacheEnabled bool `koanf:"cache_enabled"`

	// RedisAddr, RedisPassword and RedisDB configure the Redis client.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// CacheTTLSeconds bounds how long cached standings stay fresh.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// JWTSecret signs and verifies access tokens.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTLMinutes bounds issued token lifetime.
	TokenTTLMinutes int `koanf:"token_ttl_minutes"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8080",
		Store:           StoreMemory,
		RedisAddr:       "localhost:6379",
		CacheTTLSeconds: 300,
		TokenTTLMinutes: 60,
	}
}
