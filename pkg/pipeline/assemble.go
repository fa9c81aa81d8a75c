package pipeline

import (
	errs "github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/source"
)

// Assemble inserts triples into a new canvas in order, so a coordinate
// given more than once keeps its last character.
func Assemble(triples []source.Triple, fill rune) (*grid.Canvas, error) {
	c := grid.New(grid.WithFill(fill))
	for i, t := range triples {
		if err := c.Insert(t.X, t.Y, t.Char); err != nil {
			return nil, errs.Wrap(errs.ErrCodeOutOfRange, err, "triple %d %v", i, t)
		}
	}
	return c, nil
}
