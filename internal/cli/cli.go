package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/buildinfo"
	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/config"
	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/observability"
	"github.com/matzehuels/masonry/pkg/pipeline"
	"github.com/matzehuels/masonry/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "masonry"

	// defaultPageSize is the number of tiles per page in browse.
	defaultPageSize = 24
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

	configFile string
	cacheURL   string
	storeDSN   string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Masonry packs media tiles into justified rows",
		Long: `Masonry lays out images, clips and ads of varying aspect ratios into
full-width rows of equal height, the way media search grids do.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.NewLogHooks(c.Logger).Install()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "profiles file (default: $"+config.EnvConfig+" or ~/.config/masonry/config.toml)")
	flags.StringVar(&c.cacheURL, "cache-url", "", "redis URL for the layout cache (default: file cache)")
	flags.StringVar(&c.storeDSN, "store", "", "layout store: memory, sqlite://path, path.db or mongodb://...")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.profilesCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The store is opened only
// when --store is set.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var st store.Store
	if c.storeDSN != "" {
		st, err = store.Open(ctx, c.storeDSN)
		if err != nil {
			cc.Close()
			return nil, err
		}
	}
	return pipeline.NewRunner(cc, nil, st, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.cacheURL != "" {
		return cache.NewRedisCache(ctx, c.cacheURL, appName+":")
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// loadProfiles loads the profiles file named by --config or found on the
// search path.
func (c *CLI) loadProfiles() (*config.File, error) {
	f, path, err := config.LoadDefault(c.configFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("loaded profiles", "path", path)
	}
	return &f, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/masonry/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{grid.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// layoutFlags registers the flags shared by commands that compute layouts.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Profile, "profile", "p", pipeline.DefaultProfile, "layout profile (see 'masonry profiles')")
	cmd.Flags().Float64VarP(&opts.ContainerWidth, "width", "w", 0, "container width (default: profile width or 390)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute instead of using a cached layout")
}
