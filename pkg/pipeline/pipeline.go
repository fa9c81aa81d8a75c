// Package pipeline provides the decode pipeline for glyphgrid.
//
// This package implements the complete fetch → extract → assemble → render
// pipeline shared by the CLI and the HTTP server. By centralizing this logic,
// both entry points report the same errors, log the same stages and share
// one cache layout.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: Download the published document (cached by URL)
//  2. Extract: Read (x, y, character) triples from its first table
//     (cached by document hash and column layout)
//  3. Assemble: Insert the triples into a [grid.Canvas]
//  4. Render: Produce text or JSON output from the canvas
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{URL: url})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
//
// Callers that already hold triples skip the first two stages:
//
//	result, err := pipeline.Build(triples, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/source"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultFormat is the output format used when none is given.
const DefaultFormat = FormatText

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a decode run.
// This struct supports JSON serialization for API requests.
type Options struct {
	URL     string `json:"url"`
	Fill    string `json:"fill,omitempty"`    // Single character for unset cells (default " ")
	Columns string `json:"columns,omitempty"` // Column order, e.g. "x,char,y"
	Format  string `json:"format,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	columns   source.Columns
	fill      rune
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Canvas is the assembled grid.
	Canvas *grid.Canvas

	// Output is the rendering in the requested format.
	Output []byte

	// Triples are the placements read from the document, in table order.
	Triples []source.Triple

	// DocumentHash is the SHA-256 of the fetched document body.
	DocumentHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TripleCount  int
	Width        int
	Height       int
	FetchTime    time.Duration
	ExtractTime  time.Duration
	AssembleTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DocumentHit bool // Whether the document body came from cache
	TriplesHit  bool // Whether the extracted triples came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errs.ValidateURL(o.URL); err != nil {
		return err
	}
	return o.validateRender()
}

// validateRender checks the options used after extraction.
func (o *Options) validateRender() error {
	if o.validated {
		return nil
	}
	if o.Fill == "" {
		o.Fill = string(grid.DefaultFill)
	}
	if err := errs.ValidateFill(o.Fill); err != nil {
		return err
	}
	o.fill = []rune(o.Fill)[0]

	cols, err := source.ParseColumns(o.Columns)
	if err != nil {
		return err
	}
	o.columns = cols
	o.Columns = cols.String()

	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// FillRune returns the parsed fill character. Valid after validation.
func (o *Options) FillRune() rune { return o.fill }

// ColumnLayout returns the parsed column layout. Valid after validation.
func (o *Options) ColumnLayout() source.Columns { return o.columns }
