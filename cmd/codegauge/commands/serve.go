package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/codegauge/pkg/config"
	"github.com/Sumatoshi-tech/codegauge/pkg/mcp"
	"github.com/Sumatoshi-tech/codegauge/pkg/observability"
	"github.com/Sumatoshi-tech/codegauge/pkg/version"
)

const (
	meterScopeName = "codegauge"

	metricsReadHeaderTimeout = 5 * time.Second
	metricsShutdownTimeout   = 5 * time.Second
)

// NewServeCommand creates the MCP server command.
func NewServeCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The server exposes the codegauge analyzers as tools that AI agents can
discover and invoke:
  - analyze_complexity: per-block cyclomatic complexity
  - analyze_halstead: Halstead effort metrics
  - analyze_raw: raw line counts
  - analyze_maintainability: maintainability index and rank
  - rank_source: letter ranks for every block`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFlag(cobraCmd))
			if err != nil {
				return err
			}

			providers, err := initServeObservability(debug, observability.ModeMCP)
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			meter := providers.Meter

			if cfg.Serve.MetricsAddr != "" {
				promMeter, stopMetrics, metricsErr := startMetricsServer(cfg.Serve.MetricsAddr, providers)
				if metricsErr != nil {
					return metricsErr
				}

				defer stopMetrics()

				meter = promMeter
			}

			red, redErr := observability.NewREDMetrics(meter)
			if redErr != nil {
				return redErr
			}

			analysis, analysisErr := observability.NewAnalysisMetrics(meter)
			if analysisErr != nil {
				return analysisErr
			}

			deps := mcp.ServerDeps{
				Logger:          providers.Logger,
				Metrics:         red,
				AnalysisMetrics: analysis,
				Tracer:          providers.Tracer,
				CacheCapacity:   cfg.Serve.CacheCapacity,
				MaxInputSize:    cfg.Serve.MaxInputSize,
			}

			srv := mcp.NewServer(deps)

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	return cmd
}

func initServeObservability(debug bool, mode observability.AppMode) (observability.Providers, error) {
	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = version.Version
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	cfg.OTLPInsecure = os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	cfg.Mode = mode
	cfg.LogJSON = true

	if debug {
		cfg.LogLevel = slog.LevelDebug
		cfg.DebugTrace = true
	}

	return observability.Init(cfg)
}

// startMetricsServer exposes a Prometheus /metrics endpoint on addr and
// returns the meter backing it, so that instruments created by the caller
// land in the scrapeable registry.
func startMetricsServer(addr string, providers observability.Providers) (metric.Meter, func(), error) {
	promProvider, handler, err := observability.PrometheusHandler()
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.HTTPMiddleware(providers.Tracer, handler))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		serveErr := server.ListenAndServe()
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			providers.Logger.Warn("metrics server stopped", "error", serveErr)
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		_ = server.Shutdown(ctx)
		_ = promProvider.Shutdown(ctx)
	}

	return promProvider.Meter(meterScopeName), stop, nil
}
