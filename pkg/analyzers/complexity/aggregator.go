package complexity

import (
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// Message thresholds on average complexity.
const (
	msgExcellentMax = 1.0
	msgGoodMax      = 3.0
	msgFairMax      = 7.0
)

// Aggregator folds per-file complexity reports into a folder result.
type Aggregator struct {
	blocks          []map[string]any
	totalBlocks     int
	totalComplexity int
	maxComplexity   int
	warnings        int
	reportCount     int
}

// NewAggregator creates a new Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{blocks: make([]map[string]any, 0)}
}

// Aggregate accumulates one batch of per-file reports.
func (a *Aggregator) Aggregate(results map[string]analyze.Report) {
	for _, report := range results {
		if report == nil {
			continue
		}

		a.reportCount++
		a.totalBlocks += reportutil.GetInt(report, "total_blocks")
		a.totalComplexity += reportutil.GetInt(report, "total_complexity")
		a.warnings += reportutil.GetInt(report, "warnings")

		if maxCC := reportutil.GetInt(report, "max_complexity"); maxCC > a.maxComplexity {
			a.maxComplexity = maxCC
		}

		a.blocks = append(a.blocks, reportutil.GetBlocks(report, "blocks")...)
	}
}

// GetResult returns the aggregated folder-level report.
func (a *Aggregator) GetResult() analyze.Report {
	if a.reportCount == 0 {
		return analyze.Report{
			"analyzer_name":      "complexity",
			"total_blocks":       0,
			"total_complexity":   0,
			"max_complexity":     0,
			"average_complexity": 0.0,
			"warnings":           0,
			"message":            "No blocks found",
		}
	}

	var average float64
	if a.totalBlocks > 0 {
		average = float64(a.totalComplexity) / float64(a.totalBlocks)
	}

	result := analyze.Report{
		"analyzer_name":      "complexity",
		"total_blocks":       a.totalBlocks,
		"total_complexity":   a.totalComplexity,
		"max_complexity":     a.maxComplexity,
		"average_complexity": average,
		"warnings":           a.warnings,
		"message":            buildComplexityMessage(average),
	}

	if len(a.blocks) > 0 {
		result["blocks"] = a.blocks
	}

	return result
}

// buildComplexityMessage creates a message based on the average complexity.
func buildComplexityMessage(average float64) string {
	switch {
	case average <= msgExcellentMax:
		return "Excellent complexity - blocks are simple and maintainable"
	case average <= msgGoodMax:
		return "Good complexity - blocks have reasonable branching"
	case average <= msgFairMax:
		return "Fair complexity - some blocks could be simplified"
	default:
		return "High complexity - blocks should be refactored"
	}
}
