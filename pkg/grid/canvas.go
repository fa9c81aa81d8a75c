package grid

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// DefaultFill is the character used for unset cells when no [WithFill]
// option is given.
const DefaultFill = ' '

// ErrOutOfRange is returned when a coordinate lies outside the canvas.
var ErrOutOfRange = errors.New("coordinate out of range")

// Canvas is a rectangular character grid that grows on insertion.
//
// Rows are stored bottom-up: rows[0] is y = 0. Every row always holds
// exactly width runes.
type Canvas struct {
	rows    [][]rune
	width   int
	height  int
	fill    rune
	inserts int
}

// Option configures a Canvas at construction time.
type Option func(*Canvas)

// WithFill sets the character used for cells that were never written.
func WithFill(r rune) Option {
	return func(c *Canvas) { c.fill = r }
}

// New returns an empty 1×1 canvas holding a single fill character.
func New(opts ...Option) *Canvas {
	c := &Canvas{fill: DefaultFill, width: 1, height: 1}
	for _, opt := range opts {
		opt(c)
	}
	c.rows = [][]rune{{c.fill}}
	return c
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// Fill returns the character used for unset cells.
func (c *Canvas) Fill() rune { return c.fill }

// Len returns the number of successful insertions, counting repeats.
func (c *Canvas) Len() int { return c.inserts }

// Insert places r at (x, y), growing the canvas as needed. A later insert
// at the same coordinate overwrites the earlier one.
//
// Negative coordinates, and math.MaxInt whose successor is not a valid
// size, are rejected with [ErrOutOfRange] and leave the canvas untouched.
func (c *Canvas) Insert(x, y int, r rune) error {
	if x < 0 || y < 0 || x == math.MaxInt || y == math.MaxInt {
		return fmt.Errorf("%w: insert at (%d, %d)", ErrOutOfRange, x, y)
	}
	if x >= c.width {
		c.growWidth(x + 1)
	}
	if y >= c.height {
		c.growHeight(y + 1)
	}
	c.rows[y][x] = r
	c.inserts++
	return nil
}

// Get returns the character at (x, y). Unset cells yield the fill
// character. Coordinates on or past the current bounds fail with
// [ErrOutOfRange].
func (c *Canvas) Get(x, y int) (rune, error) {
	if !c.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfRange, x, y, c.width, c.height)
	}
	return c.rows[y][x], nil
}

// InBounds reports whether (x, y) addresses an existing cell.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *Canvas) growWidth(w int) {
	for y, row := range c.rows {
		c.rows[y] = append(row, c.fillRow(w-len(row))...)
	}
	c.width = w
}

func (c *Canvas) growHeight(h int) {
	for len(c.rows) < h {
		c.rows = append(c.rows, c.fillRow(c.width))
	}
	c.height = h
}

func (c *Canvas) fillRow(n int) []rune {
	row := make([]rune, n)
	for i := range row {
		row[i] = c.fill
	}
	return row
}

// Lines returns the rendered rows without line terminators, top row
// (highest y) first.
func (c *Canvas) Lines() []string {
	lines := make([]string, 0, c.height)
	for y := c.height - 1; y >= 0; y-- {
		lines = append(lines, string(c.rows[y]))
	}
	return lines
}

// String renders the canvas, one '\n'-terminated line per row from the
// highest y down to y = 0.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))
	for y := c.height - 1; y >= 0; y-- {
		for _, r := range c.rows[y] {
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTo writes the rendering produced by [Canvas.String] to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.String())
	return int64(n), err
}

var _ fmt.Stringer = (*Canvas)(nil)
var _ io.WriterTo = (*Canvas)(nil)
