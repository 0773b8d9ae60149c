package history

import (
	"context"

	"github.com/matzehuels/hydrate/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config selects and configures a Store.
type Config struct {
	Backend  string // file (default), redis or none
	Dir      string // FileStore directory
	RedisURL string // RedisStore server
	Prefix   string // RedisStore key prefix
}

// Open creates the Store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "history directory is required for the file backend")
		}
		s, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "history directory %s", cfg.Dir)
		}
		return s, nil
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "history.redis_url is required for the redis backend")
		}
		s, err := NewRedisStore(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendNone:
		return NewNullStore(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown history backend %q (want file, redis or none)", cfg.Backend)
}
