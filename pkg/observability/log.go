package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHTTPHooks writes HTTP events to a logger at debug level.
type LogHTTPHooks struct {
	Logger *log.Logger
}

func (h LogHTTPHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h LogHTTPHooks) OnResponse(_ context.Context, method, host, path string, statusCode int, duration time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path,
		"status", statusCode, "duration", duration.Round(time.Millisecond))
}

func (h LogHTTPHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}

// LogPipelineHooks writes pipeline stage events to a logger at debug level.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) OnFetchStart(_ context.Context, url string) {
	h.Logger.Debug("fetch started", "url", url)
}

func (h LogPipelineHooks) OnFetchComplete(_ context.Context, url string, size int, duration time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("fetch failed", "url", url, "err", err)
		return
	}
	h.Logger.Debug("fetch complete", "url", url, "bytes", size, "duration", duration.Round(time.Millisecond))
}

func (h LogPipelineHooks) OnExtractComplete(_ context.Context, triples int, duration time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("extract failed", "err", err)
		return
	}
	h.Logger.Debug("extract complete", "triples", triples, "duration", duration.Round(time.Millisecond))
}

func (h LogPipelineHooks) OnRenderComplete(_ context.Context, width, height int, duration time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "err", err)
		return
	}
	h.Logger.Debug("render complete", "width", width, "height", height, "duration", duration.Round(time.Millisecond))
}

// LogCacheHooks writes cache traffic to a logger at debug level.
type LogCacheHooks struct {
	Logger *log.Logger
}

func (h LogCacheHooks) OnCacheHit(_ context.Context, kind string) {
	h.Logger.Debug("cache hit", "kind", kind)
}

func (h LogCacheHooks) OnCacheMiss(_ context.Context, kind string) {
	h.Logger.Debug("cache miss", "kind", kind)
}

func (h LogCacheHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.Logger.Debug("cache set", "kind", kind, "bytes", size)
}

// UseLogger installs the log-backed hooks for all three hook sets.
func UseLogger(logger *log.Logger) {
	SetPipelineHooks(LogPipelineHooks{Logger: logger})
	SetCacheHooks(LogCacheHooks{Logger: logger})
	SetHTTPHooks(LogHTTPHooks{Logger: logger})
}

var (
	_ HTTPHooks     = LogHTTPHooks{}
	_ PipelineHooks = LogPipelineHooks{}
	_ CacheHooks    = LogCacheHooks{}
)
