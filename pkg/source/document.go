package source

import (
	"bytes"
	"context"
)

// Fetcher retrieves a document body. [fetch.Client] satisfies it.
type Fetcher interface {
	FetchDocument(ctx context.Context, url string, refresh bool) ([]byte, bool, error)
}

// Document is a Source that fetches an HTML document and reads its first
// table.
type Document struct {
	fetcher Fetcher
	url     string
	columns Columns
	refresh bool

	body     []byte
	cacheHit bool
}

// NewDocument returns a Source reading url through f.
func NewDocument(f Fetcher, url string, cols Columns) *Document {
	return &Document{fetcher: f, url: url, columns: cols}
}

// Refresh makes the next fetch bypass cached bodies.
func (d *Document) Refresh(refresh bool) *Document {
	d.refresh = refresh
	return d
}

// Triples fetches the document and parses its table.
func (d *Document) Triples(ctx context.Context) ([]Triple, error) {
	if err := d.Fetch(ctx); err != nil {
		return nil, err
	}
	return d.Parse()
}

// Fetch downloads the document body without parsing it.
func (d *Document) Fetch(ctx context.Context) error {
	body, hit, err := d.fetcher.FetchDocument(ctx, d.url, d.refresh)
	if err != nil {
		return err
	}
	d.body, d.cacheHit = body, hit
	return nil
}

// Parse extracts triples from the body retrieved by [Document.Fetch].
func (d *Document) Parse() ([]Triple, error) {
	return ParseTable(bytes.NewReader(d.body), d.columns)
}

// Body returns the last fetched body.
func (d *Document) Body() []byte { return d.body }

// CacheHit reports whether the last fetch was served from cache.
func (d *Document) CacheHit() bool { return d.cacheHit }

var _ Source = (*Document)(nil)
