package source

import (
	"context"
	"fmt"
)

// Triple is one character placement.
type Triple struct {
	X    int
	Y    int
	Char rune
}

func (t Triple) String() string {
	return fmt.Sprintf("(%d, %d, %q)", t.X, t.Y, t.Char)
}

// Source yields triples.
type Source interface {
	Triples(ctx context.Context) ([]Triple, error)
}

// Static is a Source over a fixed slice.
type Static []Triple

// Triples returns a copy of the slice.
func (s Static) Triples(ctx context.Context) ([]Triple, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Triple(nil), s...), nil
}

var _ Source = Static(nil)
