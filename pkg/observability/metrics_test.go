package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	noopmetric "go.opentelemetry.io/otel/metric/noop"

	"github.com/Sumatoshi-tech/codegauge/pkg/observability"
)

func TestREDMetricsRecording(t *testing.T) {
	t.Parallel()

	meter := noopmetric.NewMeterProvider().Meter("test")

	red, err := observability.NewREDMetrics(meter)
	require.NoError(t, err)

	ctx := context.Background()

	red.RecordRequest(ctx, "analyze_complexity", "ok", 50*time.Millisecond)
	red.RecordRequest(ctx, "analyze_complexity", "error", time.Second)

	done := red.TrackInflight(ctx, "analyze_raw")
	done()
}

func TestAnalysisMetricsRecording(t *testing.T) {
	t.Parallel()

	meter := noopmetric.NewMeterProvider().Meter("test")

	am, err := observability.NewAnalysisMetrics(meter)
	require.NoError(t, err)

	ctx := context.Background()

	am.RecordFile(ctx, "halstead", 5*time.Millisecond)
	am.RecordParseFailure(ctx)
	am.RecordCacheAccess(ctx, "mcp_results", true)
	am.RecordCacheAccess(ctx, "mcp_results", false)
}

func TestPrometheusHandlerServesMetrics(t *testing.T) {
	t.Parallel()

	provider, handler, err := observability.PrometheusHandler()
	require.NoError(t, err)
	require.NotNil(t, provider)
	require.NotNil(t, handler)

	counter, err := provider.Meter("test").Int64Counter("test.requests")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)
}
