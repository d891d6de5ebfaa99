package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridfit/pkg/observability"
	"github.com/matzehuels/gridfit/pkg/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Endpoints:
  POST /v1/layout            gallery → layout JSON
  POST /v1/render?format=svg gallery → SVG, PNG or JSON
  POST /v1/partition         weights + k → groups
  GET  /healthz
  GET  /version

The cache backend, timeouts and request limits come from the [cache] and
[server] config tables or GRIDFIT_* environment variables. Set
GRIDFIT_REDIS_ADDR or GRIDFIT_MONGO_URI to share a cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetServerHooks(hooks)

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv, err := server.New(server.Options{
				Runner:          runner,
				Defaults:        cfg.PipelineOptions(),
				Logger:          c.Logger,
				MaxElements:     cfg.Server.MaxElements,

				MaxPartitionCells: cfg.Server.MaxPartitionCells,
				ReadTimeout:     cfg.Server.ReadTimeout.Duration,
				WriteTimeout:    cfg.Server.WriteTimeout.Duration,
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
