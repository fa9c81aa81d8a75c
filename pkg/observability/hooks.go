// Package observability lets callers watch the decode pipeline without the
// pipeline depending on a particular metrics or tracing backend.
//
// Three hook sets are published process-wide: [Pipeline] (fetch, extract and
// render stages), [Cache] (hits, misses and writes per key kind) and [HTTP]
// (outgoing document requests). Each starts as [Noop]. The CLI installs the
// charmbracelet/log implementations from log.go with [UseLogger] when run
// with --verbose.
//
//	observability.Pipeline().OnFetchStart(ctx, url)
//	body, err := fetch(ctx, url)
//	observability.Pipeline().OnFetchComplete(ctx, url, len(body), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Cache key kinds reported to [CacheHooks].
const (
	KindDocument = "document"
	KindTriples  = "triples"
)

// PipelineHooks receives one event per decode stage.
type PipelineHooks interface {
	OnFetchStart(ctx context.Context, url string)
	OnFetchComplete(ctx context.Context, url string, size int, duration time.Duration, err error)
	OnExtractComplete(ctx context.Context, triples int, duration time.Duration, err error)
	OnRenderComplete(ctx context.Context, width, height int, duration time.Duration, err error)
}

// CacheHooks receives cache traffic, tagged with the key kind.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks receives outgoing request events.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// Noop implements every hook interface and discards all events.
type Noop struct{}

func (Noop) OnFetchStart(context.Context, string)                                   {}
func (Noop) OnFetchComplete(context.Context, string, int, time.Duration, error)     {}
func (Noop) OnExtractComplete(context.Context, int, time.Duration, error)           {}
func (Noop) OnRenderComplete(context.Context, int, int, time.Duration, error)       {}
func (Noop) OnCacheHit(context.Context, string)                                     {}
func (Noop) OnCacheMiss(context.Context, string)                                    {}
func (Noop) OnCacheSet(context.Context, string, int)                                {}
func (Noop) OnRequest(context.Context, string, string, string)                      {}
func (Noop) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (Noop) OnError(context.Context, string, string, string, error)                 {}

type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var hooks = registry{pipeline: Noop{}, cache: Noop{}, http: Noop{}}

// SetPipelineHooks replaces the pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.pipeline = h
	hooks.mu.Unlock()
}

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// SetHTTPHooks replaces the HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.http = h
	hooks.mu.Unlock()
}

// Pipeline returns the current pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the current cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the current HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset restores [Noop] for every hook set. Tests call it in t.Cleanup.
func Reset() {
	hooks.mu.Lock()
	hooks.pipeline, hooks.cache, hooks.http = Noop{}, Noop{}, Noop{}
	hooks.mu.Unlock()
}
