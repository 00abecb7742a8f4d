package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/internal/api"
	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/observability"
	"github.com/matzehuels/masonry/pkg/pipeline"
	"github.com/matzehuels/masonry/pkg/store"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	cfg := api.DefaultConfig()
	var (
		logFile    logFileOptions
		cacheScope string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP and websocket",
		Long: `Serve layouts over HTTP and websocket.

Layouts are saved in --store (in memory by default) and cached in the file
cache or --cache-url. Clients are rate limited per address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			logger := c.Logger
			if logFile.path != "" {
				w := newRotatingWriter(logFile)
				defer w.Close()
				logger = teeLogger(os.Stderr, w, c.Logger.GetLevel())
				observability.NewLogHooks(logger).Install()
			}

			profiles, err := c.loadProfiles()
			if err != nil {
				return err
			}
			cc, err := c.newCache(ctx, noCache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			dsn := c.storeDSN
			if dsn == "" {
				dsn = "memory"
			}
			st, err := store.Open(ctx, dsn)
			if err != nil {
				cc.Close()
				return fmt.Errorf("open store: %w", err)
			}

			var keyer cache.Keyer
			if cacheScope != "" {
				keyer = cache.NewScopedKeyer(nil, cacheScope)
			}
			runner := pipeline.NewRunner(cc, keyer, st, logger)
			defer runner.Close()

			logger.Info("starting server", "addr", cfg.Addr, "store", storeKind(dsn), "profiles", len(profiles.Profiles))
			return api.New(runner, profiles, logger, cfg).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().Float64Var(&cfg.RateLimit, "rate", cfg.RateLimit, "requests per second per client (0 disables)")
	cmd.Flags().IntVar(&cfg.Burst, "burst", cfg.Burst, "rate limit burst")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", cfg.MaxBodyBytes, "maximum request body and websocket message size")
	cmd.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "feed settle window before publishing a layout")
	cmd.Flags().StringVar(&cacheScope, "cache-scope", "", "prefix for cache keys, to share a cache between deployments")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&logFile.path, "log-file", "", "also write logs to this file, rotated")
	cmd.Flags().IntVar(&logFile.maxSizeMB, "log-max-size", 100, "rotate the log file after this many megabytes")
	cmd.Flags().IntVar(&logFile.maxBackups, "log-max-backups", 5, "rotated log files to keep")
	cmd.Flags().IntVar(&logFile.maxAgeDays, "log-max-age", 28, "days to keep rotated log files")

	return cmd
}

// storeKind names the store backend without leaking credentials in the DSN.
func storeKind(dsn string) string {
	switch {
	case dsn == "" || dsn == "memory":
		return "memory"
	case strings.HasPrefix(dsn, "mongodb"):
		return "mongodb"
	default:
		return "sqlite"
	}
}
