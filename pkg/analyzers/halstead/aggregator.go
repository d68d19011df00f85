package halstead

import (
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// Aggregator folds per-file Halstead reports into a folder result. Derived
// measures are averaged over files; totals and function tables accumulate.
type Aggregator struct {
	sums           map[string]float64
	totalFunctions int
	functions      []map[string]any
	reportCount    int
}

// averagedKeys are the numeric report keys averaged across files.
//
//nolint:gochecknoglobals // static key list.
var averagedKeys = []string{
	"volume",
	"difficulty",
	"effort",
	"time_to_program",
	"delivered_bugs",
	"distinct_operators",
	"distinct_operands",
	"total_operators",
	"total_operands",
	"vocabulary",
	"length",
	"estimated_length",
}

// NewAggregator creates a new Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		sums:      make(map[string]float64),
		functions: make([]map[string]any, 0),
	}
}

// Aggregate accumulates one batch of per-file reports.
func (a *Aggregator) Aggregate(results map[string]analyze.Report) {
	for _, report := range results {
		if report == nil {
			continue
		}

		a.reportCount++
		a.totalFunctions += reportutil.GetInt(report, "total_functions")

		for _, key := range averagedKeys {
			a.sums[key] += reportutil.GetFloat64(report, key)
		}

		a.functions = append(a.functions, reportutil.GetBlocks(report, "functions")...)
	}
}

// GetResult returns the aggregated folder-level report.
func (a *Aggregator) GetResult() analyze.Report {
	if a.reportCount == 0 {
		return analyze.Report{
			"analyzer_name":   "halstead",
			"total_functions": 0,
			"volume":          0.0,
			"difficulty":      0.0,
			"effort":          0.0,
			"message":         "No functions found",
		}
	}

	result := analyze.Report{
		"analyzer_name":   "halstead",
		"total_functions": a.totalFunctions,
	}

	for _, key := range averagedKeys {
		result[key] = a.sums[key] / float64(a.reportCount)
	}

	result["message"] = buildHalsteadMessage(
		reportutil.GetFloat64(result, "volume"),
		reportutil.GetFloat64(result, "difficulty"),
		reportutil.GetFloat64(result, "effort"),
	)

	if len(a.functions) > 0 {
		result["functions"] = a.functions
	}

	return result
}
