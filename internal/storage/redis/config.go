package redis

// Config holds Redis connection settings
type Config struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	// KeyPrefix namespaces every key this store writes.
	KeyPrefix string
}

// DefaultConfig returns the default Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379/0",
		PoolSize:     10,
		MinIdleConns: 1,
		KeyPrefix:    "gamersdb",
	}
}
