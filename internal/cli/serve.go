package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmellor/panelize/internal/server"
	"github.com/jmellor/panelize/pkg/cache"
	"github.com/jmellor/panelize/pkg/pipeline"
)

func newServeCmd() *cobra.Command {
	var (
		addr     string
		redisURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the composition HTTP service",
		Long: `Serve exposes figure composition over HTTP: POST a description to
/v1/figures and receive the rendered image. With --redis, finished artifacts
are cached in Redis and shared across instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			store := cache.NewNullCache()
			if redisURL != "" {
				var err error
				if store, err = cache.NewRedisCache(ctx, redisURL); err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				logger.Info("artifact cache enabled", "backend", "redis")
			}

			runner := pipeline.NewRunner(store, logger)
			defer runner.Close()

			return server.New(runner, logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis url for the artifact cache, e.g. redis://localhost:6379/0")

	return cmd
}
