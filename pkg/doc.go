// Package pkg provides the libraries behind glyphgrid, a decoder for
// messages hidden in published coordinate tables.
//
// # Overview
//
// A published document holds a table whose rows give an x-coordinate, a
// character and a y-coordinate. Placing every character on a grid reveals a
// picture or a line of block-letter text. The pkg directory is organized as:
//
//  1. [grid] - The sparse, growing character canvas (core)
//  2. [source] - Triples from HTML tables, local files or static slices
//  3. [fetch] - HTTP client for published documents, with caching and retry
//  4. [pipeline] - Orchestration (fetch → extract → assemble → render)
//  5. [server] - HTTP API over the pipeline
//  6. Support: [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through glyphgrid:
//
//	Published document (URL or saved file)
//	         ↓
//	    [fetch] package (GET with cache and backoff)
//	         ↓
//	    [source] package (first <table> → []Triple)
//	         ↓
//	    [grid] package (Insert each triple, grow as needed)
//	         ↓
//	    text or JSON rendering
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/glyphgrid/pkg/cache"
//	    "github.com/matzehuels/glyphgrid/pkg/pipeline"
//	)
//
//	store, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(store, nil, logger, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{URL: url})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Output)
//
// Callers that only need the core can use [grid] directly:
//
//	c := grid.New()
//	_ = c.Insert(0, 0, 'A')
//	_ = c.Insert(0, 1, 'B')
//	fmt.Print(c) // "B\nA\n"
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/grid
// [source]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/source
// [fetch]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/fetch
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/glyphgrid/pkg/buildinfo
package pkg
