package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

// viewCommand creates the view command, a shortcut for decode --view.
func (c *CLI) viewCommand() *cobra.Command {
	var flags decodeFlags

	cmd := &cobra.Command{
		Use:   "view <url|file>",
		Short: "Decode a document and browse the result interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.execute(cmd.Context(), c.options(args[0], &flags), flags.noCache)
			if err != nil {
				return err
			}
			return runViewer(cmd.Context(), args[0], result)
		},
	}

	flags.register(cmd)
	return cmd
}

// runViewer opens the full-screen viewer over a decoded result.
func runViewer(ctx context.Context, title string, result *pipeline.Result) error {
	model := NewViewerModel(title, result.Canvas.Lines())
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
