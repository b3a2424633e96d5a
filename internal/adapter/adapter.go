// Package adapter provides execution backends for query verification.
// Every backend runs a setup script plus one query against an isolated
// dataset instance, so concurrent runs and stray DDL/DML in a student
// query can never observe each other.
package adapter

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

// Config holds the configuration for an execution backend.
type Config struct {
	// Type specifies the backend type (e.g., "duckdb", "postgres")
	Type string

	// DSN is the connection string for network-based backends
	DSN string

	// QueryTimeout bounds a single setup-plus-query run
	QueryTimeout time.Duration
}

// DefaultQueryTimeout applies when Config.QueryTimeout is zero.
const DefaultQueryTimeout = 5 * time.Second

// Factory creates a runner from a config.
type Factory func(cfg Config) (verify.Runner, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a runner factory under a backend name. Called from the
// init function of each backend implementation.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = factory
}

// Get returns the factory registered under name.
func Get(name string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// IsRegistered reports whether a backend name is known.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// Available returns the sorted names of all registered backends.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a runner for the configured backend type.
func New(cfg Config) (verify.Runner, error) {
	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, fmt.Errorf("unknown execution backend %q (available: %v)", cfg.Type, Available())
	}
	return factory(cfg)
}

func (c Config) timeout() time.Duration {
	if c.QueryTimeout <= 0 {
		return DefaultQueryTimeout
	}
	return c.QueryTimeout
}
