package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VASemenov/depender/internal/server"
	"github.com/VASemenov/depender/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP API server",
		Long: `Run the analysis HTTP API server.

The server exposes analyses as REST resources: POST /analyses runs the
pipeline and persists the result, GET /analyses/{id}/artifacts/{format}
serves rendered outputs. Configuration is read from the environment and
an optional .env file; see the server package for variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := server.LoadConfig()
			if port != "" {
				if !strings.HasPrefix(port, ":") {
					port = ":" + port
				}
				cfg.Addr = port
			}

			pipelineCache, err := server.NewCache(ctx, cfg)
			if err != nil {
				return fmt.Errorf("cache backend %q: %w", cfg.CacheBackend, err)
			}
			st, err := server.NewStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("store backend %q: %w", cfg.StoreBackend, err)
			}
			defer st.Close(ctx)

			runner := pipeline.NewRunner(pipelineCache, server.NewKeyer(cfg), c.Logger)
			defer runner.Close()

			printInfo("Listening on %s (cache=%s store=%s)", cfg.Addr, cfg.CacheBackend, cfg.StoreBackend)
			return server.New(cfg, runner, st, c.Logger).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")

	return cmd
}
