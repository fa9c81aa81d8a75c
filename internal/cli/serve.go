package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/cache"
	"github.com/matzehuels/glyphgrid/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP decode service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decoder over HTTP",
		Long: `Run an HTTP server exposing GET /decode?url=..., GET /triples?url=...,
GET /version and GET /healthz. The server stops cleanly on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			backend := c.Config.Cache.Backend
			if noCache {
				backend = cache.BackendNone
			}
			printInfo("Serving glyphgrid")
			printKeyValue("address", addr)
			printKeyValue("cache", backend)
			return server.New(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the document cache")

	return cmd
}
