package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spboyer/llmcompare/internal/catalog"
	"github.com/spboyer/llmcompare/internal/cost"
	"github.com/spboyer/llmcompare/internal/webapi"
	"github.com/spboyer/llmcompare/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		host           string
		port           int
		allowedOrigins []string
		noGzip         bool
		noMetrics      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over a JSON HTTP API",
		Long: `Start an HTTP server exposing the catalog, filters, alternatives,
recommendations and cost estimates as JSON under /api/, plus Prometheus
metrics at /metrics.

The server binds to loopback by default. When the catalog comes from a file
(--catalog or the catalog key in .llmcompare.yaml), sending SIGHUP reloads
it; a reload that fails keeps serving the previous catalog.

Routes:
  GET /api/health
  GET /api/facets
  GET /api/models                    search, providers, years, contextBuckets,
                                     capabilities, ids, minMmlu, minHumanEval,
                                     sort, order
  GET /api/models/{id}
  GET /api/models/{id}/alternatives  kind
  GET /api/recommend                 task, priority, maxCost, minQuality,
                                     minContext, limit
  GET /api/cost                      ids, inputTokens, outputTokens,
                                     requestsPerDay, days
  GET /api/compare                   ids`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			sc := e.cfg.Server
			if !flags.Changed("host") {
				host = sc.Host
			}
			if !flags.Changed("port") {
				port = sc.Port
			}
			if !flags.Changed("allow-origin") {
				allowedOrigins = sc.AllowedOrigins
			}
			if !flags.Changed("no-gzip") && sc.Gzip != nil {
				noGzip = !*sc.Gzip
			}
			if !flags.Changed("no-metrics") && sc.Metrics != nil {
				noMetrics = !*sc.Metrics
			}

			// Fail before listening if the catalog cannot load.
			if _, err := e.catalog(cmd.Context()); err != nil {
				return err
			}

			webapi.Version = version
			logger := slog.Default()
			srv, err := webserver.New(webserver.Config{
				Host:           host,
				Port:           port,
				Provider:       e.provider,
				Logger:         logger,
				AllowedOrigins: allowedOrigins,
				DefaultUsage: cost.Usage{
					InputTokens:    e.cfg.Cost.InputTokens,
					OutputTokens:   e.cfg.Cost.OutputTokens,
					RequestsPerDay: e.cfg.Cost.RequestsPerDay,
					Days:           e.cfg.Cost.Days,
				},
				DisableGzip:    noGzip,
				DisableMetrics: noMetrics,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if e.file != nil {
				go reloadOnHangup(ctx, e.file, logger)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s on http://%s\n", sourceOf(e), srv.Addr()) //nolint:errcheck
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Interface to bind (default 127.0.0.1)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default 3000)")
	cmd.Flags().StringSliceVar(&allowedOrigins, "allow-origin", nil, "Origins allowed by CORS (repeatable)")
	cmd.Flags().BoolVar(&noGzip, "no-gzip", false, "Disable response compression")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "Disable the /metrics endpoint")

	return cmd
}

// reloadOnHangup refreshes the catalog file each time the process receives
// SIGHUP, until ctx is done.
func reloadOnHangup(ctx context.Context, p *catalog.FileProvider, logger *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			logger.Info("reloading catalog", "path", p.Path())
			if _, err := p.Refresh(ctx); err != nil {
				logger.Debug("keeping previous catalog", "error", err)
			}
		}
	}
}

func sourceOf(e *env) string {
	if e.file != nil {
		return e.file.Path()
	}
	return "the built-in catalog"
}
