// Package source produces the (x, y, character) triples that are assembled
// into a grid.
//
// A [Source] yields a finite, ordered, possibly empty slice of [Triple]
// values. Ordering and uniqueness are not guaranteed; the consumer decides
// what repeated coordinates mean.
//
// [ParseTable] reads the first HTML table of a document. The column holding
// x must be a non-negative integer for a row to count as data, so header
// rows are skipped without configuration. [Document] combines a
// [fetch.Client] with [ParseTable] to read a published document by URL;
// [File] reads a saved copy from disk.
//
//	src := source.NewDocument(client, url, source.DefaultColumns)
//	triples, err := src.Triples(ctx)
package source
