package ratelimit

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Driver selects the backing store for rate-limit counters
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverRedis    Driver = "redis"
)

var (
	ErrInvalidDriver = errors.New("ratelimit: unknown driver")
	ErrInvalidConfig = errors.New("ratelimit: missing driver configuration")
)

// Policy is the admission window applied per identity
type Policy struct {
	Window      time.Duration
	MaxRequests int
}

// Result is the outcome of one admission check
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Store performs atomic check-and-increment admission per identity.
// Concurrent checks for the same identity serialize; checks for different
// identities must not block each other.
type Store interface {
	Check(ctx context.Context, identity string) (*Result, error)
	Close() error
}

type storeConfig struct {
	db          *sql.DB
	redisClient *redis.Client
}

// Option configures driver-specific dependencies
type Option func(*storeConfig)

// WithDB supplies the connection used by the postgres driver
func WithDB(db *sql.DB) Option {
	return func(c *storeConfig) { c.db = db }
}

// WithRedisClient supplies the client used by the redis driver
func WithRedisClient(client *redis.Client) Option {
	return func(c *storeConfig) { c.redisClient = client }
}

// New creates a Store for the given driver
func New(driver Driver, policy Policy, opts ...Option) (Store, error) {
	config := &storeConfig{}
	for _, opt := range opts {
		opt(config)
	}

	switch driver {
	case DriverMemory:
		return newMemoryStore(policy), nil
	case DriverPostgres:
		if config.db == nil {
			return nil, ErrInvalidConfig
		}
		return newPostgresStore(config.db, policy), nil
	case DriverRedis:
		if config.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return newRedisStore(config.redisClient, policy), nil
	default:
		return nil, ErrInvalidDriver
	}
}

// evaluate applies the window semantics to a counter snapshot. It returns
// the admission result together with the counter state to persist. When the
// limit is exhausted the counter is left untouched.
func (p Policy) evaluate(windowStart time.Time, count int, now time.Time) (*Result, time.Time, int) {
	if now.Sub(windowStart) >= p.Window {
		windowStart = now
		count = 0
	}

	resetAt := windowStart.Add(p.Window)

	if count >= p.MaxRequests {
		return &Result{Allowed: false, Remaining: 0, ResetAt: resetAt}, windowStart, count
	}

	count++
	return &Result{
		Allowed:   true,
		Remaining: p.MaxRequests - count,
		ResetAt:   resetAt,
	}, windowStart, count
}
