package rawmetrics

import (
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// Aggregator sums per-file raw counts into folder totals.
type Aggregator struct {
	totals      Counts
	reportCount int
}

// NewAggregator creates a new Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate accumulates one batch of per-file reports.
func (a *Aggregator) Aggregate(results map[string]analyze.Report) {
	for _, report := range results {
		if report == nil {
			continue
		}

		a.reportCount++
		a.totals.Total += reportutil.GetInt(report, "loc")
		a.totals.LLOC += reportutil.GetInt(report, "lloc")
		a.totals.Code += reportutil.GetInt(report, "sloc")
		a.totals.Comments += reportutil.GetInt(report, "comments")
		a.totals.CommentOnly += reportutil.GetInt(report, "single_comments")
		a.totals.Multi += reportutil.GetInt(report, "multi")
		a.totals.Blank += reportutil.GetInt(report, "blank")
	}
}

// GetResult returns the aggregated folder-level report.
func (a *Aggregator) GetResult() analyze.Report {
	if a.reportCount == 0 {
		return analyze.Report{
			"analyzer_name": "raw",
			"loc":           0,
			"sloc":          0,
			"message":       "No files analyzed",
		}
	}

	result := buildReport(a.totals)
	result["total_files"] = a.reportCount

	return result
}
