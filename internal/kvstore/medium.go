// Package kvstore provides the string-keyed slots the transaction store and
// session state persist into. Values are opaque serialized JSON.
package kvstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/FuadAliah/celtis-pos/pkg/config"
)

// Medium is a persistent key-value store holding serialized JSON values.
type Medium interface {
	// Get returns the stored value. A missing key is reported with found=false
	// and a nil error.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Deps carries the connections a backend may be built on. Only the one the
// configured backend needs has to be set.
type Deps struct {
	SQL   SQLClient
	Redis RedisClient
}

// New returns the medium selected by cfg.Store.Backend.
func New(cfg config.StoreConfig, deps Deps) (Medium, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case config.StoreBackendSQLite, config.StoreBackendPostgres:
		if deps.SQL == nil {
			return nil, fmt.Errorf("%s backend requires a database client", cfg.Backend)
		}
		return NewSQL(deps.SQL), nil
	case config.StoreBackendRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("redis backend requires a redis client")
		}
		return NewRedis(deps.Redis), nil
	case config.StoreBackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
