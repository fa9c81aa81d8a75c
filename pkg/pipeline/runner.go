package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphgrid/pkg/cache"
	errs "github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/fetch"
	"github.com/matzehuels/glyphgrid/pkg/observability"
	"github.com/matzehuels/glyphgrid/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, fetcher and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Fetcher source.Fetcher
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If fetcher is nil, a [fetch.Client] over the same cache is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, fetcher source.Fetcher) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if fetcher == nil {
		client := fetch.NewClient(c, "", cache.TTLDocument, nil)
		client.SetKeyer(keyer)
		fetcher = client
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Fetcher: fetcher,
	}
}

// extraction is the outcome of the fetch and extract stages.
type extraction struct {
	triples   []source.Triple
	docHash   string
	cacheInfo CacheInfo
	fetchTime time.Duration
	parseTime time.Duration
}

// Execute runs the complete fetch → extract → assemble → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	ex, err := r.extract(ctx, &opts)
	if err != nil {
		return nil, err
	}

	result, err := Build(ex.triples, opts)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	result.DocumentHash = ex.docHash
	result.CacheInfo = ex.cacheInfo
	result.Stats.FetchTime = ex.fetchTime
	result.Stats.ExtractTime = ex.parseTime

	observability.Pipeline().OnRenderComplete(ctx, result.Stats.Width, result.Stats.Height, result.Stats.AssembleTime, nil)
	opts.Logger.Debug("assembled message",
		"width", result.Stats.Width,
		"height", result.Stats.Height,
		"duration", result.Stats.AssembleTime)

	return result, nil
}

// Extract runs the fetch and extract stages only and returns the triples
// in table order.
func (r *Runner) Extract(ctx context.Context, opts Options) ([]source.Triple, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	ex, err := r.extract(ctx, &opts)
	if err != nil {
		return nil, err
	}
	return ex.triples, nil
}

func (r *Runner) extract(ctx context.Context, opts *Options) (*extraction, error) {
	hooks := observability.Pipeline()
	ex := &extraction{}

	// Stage 1: Fetch
	doc := source.NewDocument(r.Fetcher, opts.URL, opts.columns).Refresh(opts.Refresh)
	hooks.OnFetchStart(ctx, opts.URL)
	start := time.Now()
	err := doc.Fetch(ctx)
	ex.fetchTime = time.Since(start)
	hooks.OnFetchComplete(ctx, opts.URL, len(doc.Body()), ex.fetchTime, err)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", classifyFetchError(opts.URL, err))
	}
	ex.docHash = cache.Hash(doc.Body())
	ex.cacheInfo.DocumentHit = doc.CacheHit()

	opts.Logger.Debug("fetched document",
		"bytes", len(doc.Body()),
		"cached", ex.cacheInfo.DocumentHit,
		"duration", ex.fetchTime)

	// Stage 2: Extract
	start = time.Now()
	key := r.Keyer.TriplesKey(ex.docHash, opts.Columns)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if triples, err := decodeTriples(data); err == nil {
				observability.Cache().OnCacheHit(ctx, observability.KindTriples)
				ex.triples = triples
				ex.cacheInfo.TriplesHit = true
			}
		}
	}

	if !ex.cacheInfo.TriplesHit {
		observability.Cache().OnCacheMiss(ctx, observability.KindTriples)
		triples, err := doc.Parse()
		if err != nil {
			hooks.OnExtractComplete(ctx, 0, time.Since(start), err)
			return nil, fmt.Errorf("extract: %w", err)
		}
		ex.triples = triples
		if data, err := encodeTriples(triples); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLTriples); err == nil {
				observability.Cache().OnCacheSet(ctx, observability.KindTriples, len(data))
			}
		}
	}
	ex.parseTime = time.Since(start)
	hooks.OnExtractComplete(ctx, len(ex.triples), ex.parseTime, nil)

	opts.Logger.Debug("extracted triples",
		"triples", len(ex.triples),
		"cached", ex.cacheInfo.TriplesHit,
		"duration", ex.parseTime)

	return ex, nil
}

// Build runs the assemble and render stages over triples that are already
// in hand.
func Build(triples []source.Triple, opts Options) (*Result, error) {
	if err := opts.validateRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	c, err := Assemble(triples, opts.fill)
	if err != nil {
		return nil, err
	}
	out, err := Render(c, opts.Format)
	if err != nil {
		return nil, err
	}

	return &Result{
		Canvas:  c,
		Output:  out,
		Triples: triples,
		Stats: Stats{
			TripleCount:  len(triples),
			Width:        c.Width(),
			Height:       c.Height(),
			AssembleTime: time.Since(start),
		},
	}, nil
}

// BuildFrom reads every triple from src and builds the result.
func BuildFrom(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	triples, err := src.Triples(ctx)
	if err != nil {
		return nil, err
	}
	return Build(triples, opts)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// classifyFetchError attaches an error code to fetch failures.
// Context errors pass through untouched so callers can detect cancellation.
func classifyFetchError(url string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, fetch.ErrNotFound):
		return errs.Wrap(errs.ErrCodeNotFound, err, "document %s", url)
	case errors.Is(err, fetch.ErrTooLarge):
		return errs.Wrap(errs.ErrCodeInvalidDocument, err, "document %s", url)
	case errors.Is(err, fetch.ErrNetwork):
		return errs.Wrap(errs.ErrCodeNetwork, err, "document %s", url)
	default:
		return err
	}
}

// cachedTriple is the cache encoding of a triple.
type cachedTriple struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Char string `json:"c"`
}

func encodeTriples(triples []source.Triple) ([]byte, error) {
	out := make([]cachedTriple, len(triples))
	for i, t := range triples {
		out[i] = cachedTriple{X: t.X, Y: t.Y, Char: string(t.Char)}
	}
	return json.Marshal(out)
}

func decodeTriples(data []byte) ([]source.Triple, error) {
	var in []cachedTriple
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	triples := make([]source.Triple, len(in))
	for i, t := range in {
		r := []rune(t.Char)
		if len(r) != 1 {
			return nil, fmt.Errorf("cached triple %d: bad character %q", i, t.Char)
		}
		triples[i] = source.Triple{X: t.X, Y: t.Y, Char: r[0]}
	}
	return triples, nil
}
