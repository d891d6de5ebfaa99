package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend string
	Dir     string
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open creates the backend named by cfg.Backend. An empty backend means
// file, and an empty Dir means [DefaultDir].
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = d
		}
		return nonNil(NewFileCache(dir))
	case BackendRedis:
		return nonNil(NewRedisCache(ctx, cfg.Redis))
	case BackendMongo:
		return nonNil(NewMongoCache(ctx, cfg.Mongo))
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("%w: %q (want file, redis, mongo or none)", ErrUnknownBackend, cfg.Backend)
}

// nonNil converts a constructor result to the interface without wrapping a
// nil pointer.
func nonNil[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
