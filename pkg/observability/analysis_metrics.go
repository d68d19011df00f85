package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesTotal         = "codegauge.analysis.files.total"
	metricParseFailuresTotal = "codegauge.analysis.parse_failures.total"
	metricFileDuration       = "codegauge.analysis.file.duration.seconds"
	metricCacheHitsTotal     = "codegauge.cache.hits.total"
	metricCacheMissesTotal   = "codegauge.cache.misses.total"

	attrAnalyzer = "analyzer"
	attrCache    = "cache"
)

// fileDurationBoundaries covers single-file analysis, which rarely exceeds
// a few seconds even for generated sources.
var fileDurationBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

// AnalysisMetrics holds OTel instruments for per-file analysis metrics.
type AnalysisMetrics struct {
	filesTotal    metric.Int64Counter
	parseFailures metric.Int64Counter
	fileDuration  metric.Float64Histogram
	cacheHits     metric.Int64Counter
	cacheMisses   metric.Int64Counter
}

// NewAnalysisMetrics creates analysis metric instruments from the given meter.
func NewAnalysisMetrics(mt metric.Meter) (*AnalysisMetrics, error) {
	files, err := mt.Int64Counter(metricFilesTotal,
		metric.WithDescription("Total files analyzed"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesTotal, err)
	}

	failures, err := mt.Int64Counter(metricParseFailuresTotal,
		metric.WithDescription("Total files skipped due to parse failures"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricParseFailuresTotal, err)
	}

	duration, err := mt.Float64Histogram(metricFileDuration,
		metric.WithDescription("Per-file analysis duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(fileDurationBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFileDuration, err)
	}

	hits, err := mt.Int64Counter(metricCacheHitsTotal,
		metric.WithDescription("Result cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCacheHitsTotal, err)
	}

	misses, err := mt.Int64Counter(metricCacheMissesTotal,
		metric.WithDescription("Result cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCacheMissesTotal, err)
	}

	return &AnalysisMetrics{
		filesTotal:    files,
		parseFailures: failures,
		fileDuration:  duration,
		cacheHits:     hits,
		cacheMisses:   misses,
	}, nil
}

// RecordFile records one analyzed file and its duration for an analyzer.
func (am *AnalysisMetrics) RecordFile(ctx context.Context, analyzer string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String(attrAnalyzer, analyzer))

	am.filesTotal.Add(ctx, 1, attrs)
	am.fileDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordParseFailure records one file skipped because it failed to parse.
func (am *AnalysisMetrics) RecordParseFailure(ctx context.Context) {
	am.parseFailures.Add(ctx, 1)
}

// RecordCacheAccess records a result cache lookup against a named cache.
func (am *AnalysisMetrics) RecordCacheAccess(ctx context.Context, cache string, hit bool) {
	attrs := metric.WithAttributes(attribute.String(attrCache, cache))

	if hit {
		am.cacheHits.Add(ctx, 1, attrs)

		return
	}

	am.cacheMisses.Add(ctx, 1, attrs)
}
