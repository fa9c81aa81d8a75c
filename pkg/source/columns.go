package source

import (
	"fmt"
	"strings"

	errs "github.com/matzehuels/glyphgrid/pkg/errors"
)

// Columns maps table columns (0-indexed) to triple fields.
type Columns struct {
	X    int
	Char int
	Y    int
}

// DefaultColumns is the layout of published message documents:
// x-coordinate, character, y-coordinate.
var DefaultColumns = Columns{X: 0, Char: 1, Y: 2}

// String returns the column order in the form accepted by [ParseColumns].
func (c Columns) String() string {
	if c.Validate() != nil {
		return fmt.Sprintf("invalid(%d,%d,%d)", c.X, c.Char, c.Y)
	}
	names := make([]string, c.width())
	for i := range names {
		names[i] = "_"
	}
	names[c.X] = "x"
	names[c.Char] = "char"
	names[c.Y] = "y"
	return strings.Join(names, ",")
}

// width is the minimum number of cells a data row needs.
func (c Columns) width() int {
	return max(c.X, c.Char, c.Y) + 1
}

// Validate checks that the three columns are distinct and non-negative.
func (c Columns) Validate() error {
	if c.X < 0 || c.Char < 0 || c.Y < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "column indexes must be non-negative: %+v", c)
	}
	if c.X == c.Char || c.X == c.Y || c.Char == c.Y {
		return errs.New(errs.ErrCodeInvalidInput, "columns must be distinct: %+v", c)
	}
	return nil
}

// ParseColumns parses a comma-separated column order such as "x,char,y" or
// "char,_,x,y". Each of x, char and y must appear exactly once; "_" or an
// empty entry skips a column. An empty string yields [DefaultColumns].
func ParseColumns(s string) (Columns, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultColumns, nil
	}

	c := Columns{X: -1, Char: -1, Y: -1}
	for i, name := range strings.Split(s, ",") {
		var dst *int
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "x":
			dst = &c.X
		case "y":
			dst = &c.Y
		case "char", "c", "character":
			dst = &c.Char
		case "_", "":
			continue
		default:
			return Columns{}, errs.New(errs.ErrCodeInvalidInput, "unknown column %q in %q", name, s)
		}
		if *dst != -1 {
			return Columns{}, errs.New(errs.ErrCodeInvalidInput, "column %q given twice in %q", name, s)
		}
		*dst = i
	}

	if c.X < 0 || c.Char < 0 || c.Y < 0 {
		return Columns{}, errs.New(errs.ErrCodeInvalidInput, "columns %q must name x, char and y", s)
	}
	return c, nil
}
