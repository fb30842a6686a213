package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowtower/internal/server"
	"github.com/matzehuels/flowtower/pkg/buildinfo"
	"github.com/matzehuels/flowtower/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisURL  string
		cacheSize int
		scope     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render API over HTTP",
		Long: `Serve the layout and render API over HTTP.

Routes:
  GET  /healthz
  POST /v1/layout                 flow document → layout JSON
  POST /v1/render?format=svg      flow document → artifact

Results are cached in memory, or in Redis when --redis-url (or
FLOWTOWER_REDIS_URL) is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("redis-url") {
				cfg.Server.RedisURL = redisURL
			}
			if cmd.Flags().Changed("cache-size") {
				cfg.Server.CacheSize = cacheSize
			}
			if cmd.Flags().Changed("cache-scope") {
				cfg.Server.CacheScope = scope
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := server.NewCache(ctx, cfg.Server)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, server.NewKeyer(cfg.Server), c.Logger)
			defer runner.Close()

			backend := "memory"
			if cfg.Server.RedisURL != "" {
				backend = "redis"
			}
			c.Logger.Info("starting flowtower API", "version", buildinfo.Short(), "cache", backend, "scope", cfg.Server.CacheScope)

			srv := server.New(runner, cfg.PipelineOptions(), c.Logger)
			return ignoreCanceled(srv.ListenAndServe(ctx, cfg.Server.Addr))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for a shared cache")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "in-memory cache entries (default 512)")
	cmd.Flags().StringVar(&scope, "cache-scope", "", "prefix for cache keys when several deployments share a cache")

	return cmd
}

// ignoreCanceled treats shutdown by signal as success.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
