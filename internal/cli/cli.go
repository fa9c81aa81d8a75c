// Package cli implements the glyphgrid command-line interface.
//
// This package provides commands for decoding the messages hidden in
// published documents, inspecting the extracted triples, serving the
// decoder over HTTP, and managing the document cache. The CLI is built
// using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - decode: Fetch a document and print the assembled message
//   - triples: Print the (x, y, character) triples read from a document
//   - view: Open the assembled message in a scrollable terminal viewer
//   - serve: Run the HTTP decode service
//   - cache: Manage the document cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs and
// status lines go to stderr; stdout carries only the decoded output.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/buildinfo"
	"github.com/matzehuels/glyphgrid/pkg/cache"
	"github.com/matzehuels/glyphgrid/pkg/config"
	"github.com/matzehuels/glyphgrid/pkg/fetch"
	"github.com/matzehuels/glyphgrid/pkg/observability"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "glyphgrid",
		Short: "glyphgrid decodes messages hidden in published coordinate tables",
		Long: `glyphgrid reads a table of (x, character, y) rows from a published document
and places every character on a grid, revealing the picture or text it spells.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.setup() },
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/glyphgrid/config.toml)")

	// Register all subcommands
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.triplesCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and applies the verbosity flag.
func (c *CLI) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.UseLogger(c.Logger)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}

	client := fetch.NewClient(store, "", c.Config.Cache.TTL.Duration, map[string]string{
		"User-Agent": c.Config.HTTP.UserAgent,
	})
	client.SetTimeout(c.Config.HTTP.Timeout.Duration)

	return pipeline.NewRunner(store, nil, c.Logger, client), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	backend := c.Config.Cache.Backend
	var dir string
	if backend == cache.BackendFile || backend == "" {
		var err error
		if dir, err = c.Config.CacheDir(); err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
	}
	return cache.Open(cache.Options{
		Backend:       backend,
		Dir:           dir,
		RedisURL:      c.Config.Cache.RedisURL,
		MongoURI:      c.Config.Cache.MongoURI,
		MongoDatabase: c.Config.Cache.MongoDatabase,
	})
}

// =============================================================================
// Options Helpers
// =============================================================================

// decodeFlags are the pipeline flags shared by decode, triples and view.
type decodeFlags struct {
	fill    string
	columns string
	noCache bool
	refresh bool
}

func (f *decodeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.fill, "fill", "", "character for empty cells (default from config, \" \")")
	cmd.Flags().StringVar(&f.columns, "columns", "", "table column order, e.g. x,char,y (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the document cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "refetch the document even if cached")
}

// options merges flags over the loaded config.
func (c *CLI) options(url string, f *decodeFlags) pipeline.Options {
	opts := pipeline.Options{
		URL:     url,
		Fill:    c.Config.Fill,
		Columns: c.Config.Columns,
		Refresh: f.refresh,
		Logger:  c.Logger,
	}
	if f.fill != "" {
		opts.Fill = f.fill
	}
	if f.columns != "" {
		opts.Columns = f.columns
	}
	return opts
}
