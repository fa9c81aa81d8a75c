// Package config loads glyphgrid settings from a TOML file.
//
// The default location is $XDG_CONFIG_HOME/glyphgrid/config.toml (falling
// back to ~/.config/glyphgrid/config.toml). A missing default file is not an
// error; every setting has a default. Command-line flags override values
// loaded here.
//
//	fill = " "
//	columns = "x,char,y"
//
//	[http]
//	timeout = "10s"
//	user_agent = "glyphgrid"
//
//	[cache]
//	backend = "file"   # file | redis | mongo | none
//	dir = ""
//	ttl = "1h"
//	redis_url = ""
//	mongo_uri = ""
//	mongo_database = "glyphgrid"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/glyphgrid/pkg/cache"
	errs "github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/fetch"
	"github.com/matzehuels/glyphgrid/pkg/source"
)

// AppName names the config and cache directories.
const AppName = "glyphgrid"

// Config is the full set of file-backed settings.
type Config struct {
	Fill    string       `toml:"fill"`
	Columns string       `toml:"columns"`
	HTTP    HTTPConfig   `toml:"http"`
	Cache   CacheConfig  `toml:"cache"`
	Server  ServerConfig `toml:"server"`
}

// HTTPConfig controls document fetches.
type HTTPConfig struct {
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`

	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Fill:    " ",
		Columns: source.DefaultColumns.String(),
		HTTP: HTTPConfig{
			Timeout:   Duration{fetch.DefaultTimeout},
			UserAgent: fetch.DefaultUserAgent,
		},
		Cache: CacheConfig{
			Backend:       cache.BackendFile,
			TTL:           Duration{cache.TTLDocument},
			MongoDatabase: cache.DefaultMongoDatabase,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := userDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the configured cache directory, or the XDG default
// ($XDG_CACHE_HOME/glyphgrid, falling back to ~/.cache/glyphgrid).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return userDir("XDG_CACHE_HOME", ".cache")
}

func userDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}

// Load reads the config file at path over the defaults. An empty path
// means [DefaultPath], which may be absent. An explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if err := errs.ValidateFill(c.Fill); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "fill")
	}
	if _, err := source.ParseColumns(c.Columns); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "columns")
	}
	if c.HTTP.Timeout.Duration <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "http.timeout must be positive")
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	case cache.BackendMongo:
		if c.Cache.MongoURI == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache.backend %q (must be file, redis, mongo or none)", c.Cache.Backend)
	}
	return nil
}
