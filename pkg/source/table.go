package source

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	errs "github.com/matzehuels/glyphgrid/pkg/errors"
)

// ParseTable reads the first <table> in an HTML document and returns one
// triple per data row, in document order.
//
// A row is data when its x cell holds a non-negative integer; every other
// row (headers, notes) is skipped. A data row that lacks a column, has a
// non-integer y, a coordinate above [MaxCoord], or whose character cell is
// not exactly one printable character fails the whole parse with an
// INVALID_DOCUMENT error.
func ParseTable(r io.Reader, cols Columns) ([]Triple, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "parse html")
	}

	table := findFirst(doc, atom.Table)
	if table == nil {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "document contains no table")
	}

	var triples []Triple
	for i, row := range tableRows(table) {
		cells := rowCells(row)
		if cols.X >= len(cells) {
			continue
		}
		x, err := parseCoord(cells[cols.X])
		if errors.Is(err, errNotCoord) {
			continue
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "row %d: x coordinate", i+1)
		}
		if len(cells) < cols.width() {
			return nil, errs.New(errs.ErrCodeInvalidDocument,
				"row %d: expected at least %d columns, got %d", i+1, cols.width(), len(cells))
		}
		y, err := parseCoord(cells[cols.Y])
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "row %d: y coordinate", i+1)
		}
		ch, err := parseChar(cells[cols.Char])
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "row %d", i+1)
		}
		triples = append(triples, Triple{X: x, Y: y, Char: ch})
	}
	return triples, nil
}

// MaxCoord is the largest coordinate accepted from a document. It bounds
// the canvas a single row can force into existence.
const MaxCoord = 4095

var (
	errNotCoord      = errors.New("not a non-negative integer")
	errCoordTooLarge = fmt.Errorf("exceeds %d", MaxCoord)
)

// parseCoord reads a coordinate cell. Integers too large for an int are
// reported as errCoordTooLarge, not errNotCoord, so they fail the parse
// rather than being skipped as headers.
func parseCoord(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(s, "-"):
		return 0, fmt.Errorf("%q %w", s, errCoordTooLarge)
	case err != nil || n < 0:
		return 0, fmt.Errorf("%q is %w", s, errNotCoord)
	case n > MaxCoord:
		return 0, fmt.Errorf("%d %w", n, errCoordTooLarge)
	}
	return n, nil
}

// parseChar turns a character cell into a single rune. Cells are
// NFC-normalized first; a cell holding only whitespace stands for a space.
func parseChar(raw string) (rune, error) {
	s := norm.NFC.String(raw)
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		if s == "" {
			return 0, errs.New(errs.ErrCodeInvalidDocument, "empty character cell")
		}
		return ' ', nil
	}
	if n := utf8.RuneCountInString(trimmed); n != 1 {
		return 0, errs.New(errs.ErrCodeInvalidDocument, "character cell %q holds %d characters", trimmed, n)
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	if r == utf8.RuneError || !unicode.IsPrint(r) || runewidth.RuneWidth(r) == 0 {
		return 0, errs.New(errs.ErrCodeInvalidDocument, "character %q is not printable", r)
	}
	return r, nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// tableRows returns the <tr> elements of table, looking through <thead>,
// <tbody> and <tfoot> but not into nested tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Tr:
				rows = append(rows, c)
			case atom.Thead, atom.Tbody, atom.Tfoot:
				walk(c)
			}
		}
	}
	walk(table)
	return rows
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, textContent(c))
		}
	}
	return cells
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
