package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/pipeline"
	"github.com/matzehuels/glyphgrid/pkg/source"
)

// triplesCommand creates the triples command, which prints the rows read
// from a document without assembling them.
func (c *CLI) triplesCommand() *cobra.Command {
	var (
		flags decodeFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "triples <url|file>",
		Short: "Print the (x, y, character) triples read from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			triples, err := c.extract(cmd.Context(), c.options(args[0], &flags), flags.noCache)
			if err != nil {
				return err
			}
			prog.done("extracted", "triples", len(triples))

			fmt.Fprintln(cmd.OutOrStdout(), triplesTable(triples, limit))
			if limit > 0 && len(triples) > limit {
				printDetail("%d of %d triples shown", limit, len(triples))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n triples (0 for all)")

	return cmd
}

// extract reads triples from a URL through the runner, or from a local file.
func (c *CLI) extract(ctx context.Context, opts pipeline.Options, noCache bool) ([]source.Triple, error) {
	if source.IsLocal(opts.URL) {
		cols, err := source.ParseColumns(opts.Columns)
		if err != nil {
			return nil, err
		}
		return source.File{Path: opts.URL, Columns: cols}.Triples(ctx)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()
	return runner.Extract(ctx, opts)
}

// triplesTable renders triples as a bordered table in document order.
func triplesTable(triples []source.Triple, limit int) string {
	if limit > 0 && len(triples) > limit {
		triples = triples[:limit]
	}

	rows := make([][]string, len(triples))
	for i, t := range triples {
		rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(t.X), strconv.Itoa(t.Y), string(t.Char)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "x", "y", "char").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorDim)
			case col == 3:
				return cellStyle.Foreground(colorCyan)
			default:
				return cellStyle
			}
		}).
		Render()
}
