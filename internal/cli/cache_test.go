package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/matzehuels/glyphgrid/pkg/cache"
	"github.com/matzehuels/glyphgrid/pkg/config"
)

func TestCacheDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := config.Default().CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error: %v", err)
	}
	if want := filepath.Join(base, "glyphgrid"); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCacheNoCache(t *testing.T) {
	c := New(io.Discard, LogInfo)
	store, err := c.newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := store.Get(t.Context(), "k"); err != nil {
		t.Errorf("null cache Get error: %v", err)
	}
}

func TestNewCacheBackendWithoutCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "")

	tests := []struct {
		name     string
		backend  config.CacheConfig
		wantType string
	}{
		{"file falls back to null", config.CacheConfig{Backend: cache.BackendFile}, "*cache.NullCache"},
		{"redis", config.CacheConfig{Backend: cache.BackendRedis, RedisURL: "redis://localhost:6379/0"}, "*cache.RedisCache"},
		{"mongo", config.CacheConfig{Backend: cache.BackendMongo, MongoURI: "mongodb://localhost:27017"}, "*cache.MongoCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.Config.Cache = tt.backend
			store, err := c.newCache(false)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer store.Close()
			if got := fmt.Sprintf("%T", store); got != tt.wantType {
				t.Errorf("newCache() = %s, want %s", got, tt.wantType)
			}
		})
	}
}
