// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Backend names accepted by StoreBackend and CacheBackend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CacheTTLSeconds is the leaderboard snapshot lifetime.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// StoreBackend selects event storage: memory or sqlite.
	StoreBackend string `koanf:"store_backend"`

	// SQLitePath is the database file used when StoreBackend is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// CacheBackend selects the snapshot cache: memory or redis.
	CacheBackend string `koanf:"cache_backend"`

	// RedisAddr, RedisPassword, and RedisDB configure the redis cache backend.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// New creates a Config populated with defaults: in-process backends and a
// 30 second snapshot lifetime.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		CacheTTLSeconds: 30,
		StoreBackend:    BackendMemory,
		SQLitePath:      "rankd.db",
		CacheBackend:    BackendMemory,
		RedisAddr:       "localhost:6379",
	}
}
