package pipeline

import (
	"encoding/json"

	errs "github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/grid"
)

// Snapshot is the JSON form of a rendered canvas. Lines are ordered top
// row first, exactly as in the text rendering.
type Snapshot struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Fill   string   `json:"fill"`
	Lines  []string `json:"lines"`
}

// NewSnapshot captures c.
func NewSnapshot(c *grid.Canvas) Snapshot {
	return Snapshot{
		Width:  c.Width(),
		Height: c.Height(),
		Fill:   string(c.Fill()),
		Lines:  c.Lines(),
	}
}

// Render produces the output for format.
func Render(c *grid.Canvas, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return []byte(c.String()), nil
	case FormatJSON:
		data, err := json.MarshalIndent(NewSnapshot(c), "", "  ")
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode json")
		}
		return append(data, '\n'), nil
	default:
		return nil, ValidateFormat(format)
	}
}
