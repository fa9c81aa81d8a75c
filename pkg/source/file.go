package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	errs "github.com/matzehuels/glyphgrid/pkg/errors"
)

// File is a Source reading a saved HTML document from disk.
type File struct {
	Path    string
	Columns Columns
}

// Triples opens the file and parses its first table.
func (f File) Triples(ctx context.Context) ([]Triple, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fh, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeNotFound, err, "document %s", f.Path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", f.Path)
	}
	defer fh.Close()

	return ParseTable(fh, f.Columns)
}

// IsLocal reports whether ref names a local file rather than a URL.
func IsLocal(ref string) bool {
	return !strings.Contains(ref, "://")
}

var _ Source = File{}
