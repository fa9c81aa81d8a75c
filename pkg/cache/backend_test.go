package cache

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

// backendCase runs the shared Cache behaviour against one backend. advance
// moves that backend's clock past a TTL.
type backendCase struct {
	cache   Cache
	advance func(time.Duration)
}

func testBackend(t *testing.T, bc backendCase) {
	t.Helper()
	ctx := context.Background()
	c := bc.cache

	t.Run("miss", func(t *testing.T) {
		data, hit, err := c.Get(ctx, "doc:absent")
		if err != nil || hit || data != nil {
			t.Errorf("Get(absent) = %q, %v, %v; want miss", data, hit, err)
		}
	})

	t.Run("set get overwrite", func(t *testing.T) {
		value := []byte("<table>\x00\xff</table>")
		if err := c.Set(ctx, "doc:a", value, time.Hour); err != nil {
			t.Fatalf("Set error: %v", err)
		}
		got, hit, err := c.Get(ctx, "doc:a")
		if err != nil || !hit || !bytes.Equal(got, value) {
			t.Fatalf("Get = %q, %v, %v; want %q", got, hit, err, value)
		}
		if err := c.Set(ctx, "doc:a", []byte("v2"), time.Hour); err != nil {
			t.Fatal(err)
		}
		if got, _, _ := c.Get(ctx, "doc:a"); string(got) != "v2" {
			t.Errorf("Get after overwrite = %q, want v2", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		_ = c.Set(ctx, "doc:gone", []byte("x"), time.Hour)
		if err := c.Delete(ctx, "doc:gone"); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
		if _, hit, _ := c.Get(ctx, "doc:gone"); hit {
			t.Error("Get after Delete hit")
		}
		if err := c.Delete(ctx, "doc:never"); err != nil {
			t.Errorf("Delete(absent) error: %v", err)
		}
	})

	t.Run("expiry", func(t *testing.T) {
		if err := c.Set(ctx, "triples:short", []byte("x"), 50*time.Millisecond); err != nil {
			t.Fatal(err)
		}
		if err := c.Set(ctx, "triples:forever", []byte("y"), 0); err != nil {
			t.Fatal(err)
		}
		bc.advance(100 * time.Millisecond)
		if _, hit, err := c.Get(ctx, "triples:short"); hit || err != nil {
			t.Errorf("Get(expired) = %v, %v; want miss", hit, err)
		}
		if _, hit, _ := c.Get(ctx, "triples:forever"); !hit {
			t.Error("entry without ttl expired")
		}
	})

	t.Run("clear", func(t *testing.T) {
		clearer, ok := c.(Clearer)
		if !ok {
			t.Fatalf("%T does not implement Clearer", c)
		}
		_ = c.Set(ctx, "doc:1", []byte("a"), time.Hour)
		_ = c.Set(ctx, "triples:1", []byte("b"), time.Hour)

		n, err := clearer.Clear(ctx)
		if err != nil {
			t.Fatalf("Clear error: %v", err)
		}
		if n < 2 {
			t.Errorf("Clear removed %d entries, want at least 2", n)
		}
		for _, key := range []string{"doc:1", "triples:1", "triples:forever"} {
			if _, hit, _ := c.Get(ctx, key); hit {
				t.Errorf("Get(%s) hit after Clear", key)
			}
		}
	})
}

func TestFileCacheBackend(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	testBackend(t, backendCase{cache: c, advance: time.Sleep})
}

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache("redis://" + mr.Addr() + "/0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCacheBackend(t *testing.T) {
	c, mr := newTestRedis(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	testBackend(t, backendCase{cache: c, advance: mr.FastForward})
}

func TestRedisCacheClearKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	if err := mr.Set("session:42", "other app"); err != nil {
		t.Fatal(err)
	}
	for i := range 250 {
		if err := mr.Set(fmt.Sprintf("doc:%03d", i), "x"); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 250 {
		t.Errorf("Clear removed %d keys, want 250", n)
	}
	if !mr.Exists("session:42") {
		t.Error("Clear removed a key outside the glyphgrid key space")
	}
}

func TestMongoEntryExpired(t *testing.T) {
	now := time.Now()
	past, future := now.Add(-time.Second), now.Add(time.Second)

	tests := []struct {
		name    string
		expires *time.Time
		want    bool
	}{
		{"no expiry", nil, false},
		{"past", &past, true},
		{"future", &future, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (mongoEntry{ExpiresAt: tt.expires}).expired(now); got != tt.want {
				t.Errorf("expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestMongoCacheBackend needs a server; set GLYPHGRID_TEST_MONGO_URI, e.g.
// mongodb://localhost:27017.
func TestMongoCacheBackend(t *testing.T) {
	uri := os.Getenv("GLYPHGRID_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("GLYPHGRID_TEST_MONGO_URI not set")
	}
	c, err := NewMongoCache(uri, fmt.Sprintf("glyphgrid_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = c.coll.Database().Drop(context.Background())
		c.Close()
	})
	testBackend(t, backendCase{cache: c, advance: time.Sleep})
}
