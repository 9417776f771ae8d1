package specdex

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	keyPrefix       string
	fuzzyThreshold  float64
	compareCapacity int
	sessionTTL      time.Duration

	logger *zap.Logger
}

// WithRedis sets the Redis address and password.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedisCluster sets multiple Redis addresses.
func WithRedisCluster(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	}
}

// WithUsername sets the Redis ACL username.
func WithUsername(username string) Option {
	return func(c *clientConfig) {
		c.username = username
	}
}

// WithDB selects a Redis logical database.
func WithDB(db int) Option {
	return func(c *clientConfig) {
		c.db = db
	}
}

// WithKeyPrefix sets the storage key prefix (default "specdex:").
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithFuzzyThreshold overrides the fuzzy match acceptance threshold.
func WithFuzzyThreshold(t float64) Option {
	return func(c *clientConfig) {
		c.fuzzyThreshold = t
	}
}

// WithCompareCapacity sets the comparison set size limit (default 4).
func WithCompareCapacity(n int) Option {
	return func(c *clientConfig) {
		c.compareCapacity = n
	}
}

// WithSessionTTL sets the comparison session expiry (default 24h).
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.sessionTTL = ttl
	}
}

// WithLogger sets the logger used by the wired services.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
