package cache

import "fmt"

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options selects and configures a backend for [Open]. Only the fields of
// the chosen backend are read.
type Options struct {
	Backend string

	Dir string // file

	RedisURL string // redis

	MongoURI      string // mongo
	MongoDatabase string
}

// Open creates the backend named by opts.Backend. An empty name means file.
func Open(opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFileCache(opts.Dir)
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires a URL")
		}
		return NewRedisCache(opts.RedisURL)
	case BackendMongo:
		if opts.MongoURI == "" {
			return nil, fmt.Errorf("mongo backend requires a URI")
		}
		return NewMongoCache(opts.MongoURI, opts.MongoDatabase)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
