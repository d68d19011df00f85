package maintain

import (
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// Aggregator folds per-file Maintainability Index reports into a folder
// summary. File identity comes from the report itself, not the batch keys.
type Aggregator struct {
	entries []Entry
	miSum   float64
	ranks   map[string]int
	sortKey SortKey
}

// NewAggregator creates a new Aggregator listing files best first.
func NewAggregator() *Aggregator {
	return NewSortedAggregator(SortByScore)
}

// NewSortedAggregator creates an Aggregator whose file listing follows key.
func NewSortedAggregator(key SortKey) *Aggregator {
	return &Aggregator{ranks: map[string]int{}, sortKey: key}
}

// Aggregate accumulates one batch of per-file reports.
func (a *Aggregator) Aggregate(results map[string]analyze.Report) {
	for _, report := range results {
		if report == nil {
			continue
		}

		mi := reportutil.GetFloat64(report, "mi")
		a.miSum += mi
		a.ranks[reportutil.GetString(report, "rank")]++
		a.entries = append(a.entries, Entry{
			Name:  reportutil.GetString(report, "file"),
			Score: mi,
			Lines: reportutil.GetInt(report, "sloc"),
		})
	}
}

// GetResult returns the aggregated folder-level report. Files are listed in
// the configured sort order; the worst file is called out separately and does
// not depend on that order.
func (a *Aggregator) GetResult() analyze.Report {
	if len(a.entries) == 0 {
		return analyze.Report{
			"analyzer_name": "maintainability",
			"total_files":   0,
			"message":       "No files analyzed",
		}
	}

	SortEntries(a.entries, a.sortKey)

	files := make([]map[string]any, 0, len(a.entries))
	worst := a.entries[0]

	for _, e := range a.entries {
		if e.Score < worst.Score {
			worst = e
		}

		files = append(files, map[string]any{
			"file": e.Name,
			"mi":   e.Score,
			"rank": RankOf(e.Score),
			"sloc": e.Lines,
		})
	}

	averageMI := a.miSum / float64(len(a.entries))

	return analyze.Report{
		"analyzer_name": "maintainability",
		"total_files":   len(a.entries),
		"average_mi":    averageMI,
		"rank":          RankOf(averageMI),
		"rank_counts":   a.rankCounts(),
		"worst_file":    worst.Name,
		"worst_mi":      worst.Score,
		"files":         files,
		"message":       buildMaintainMessage(RankOf(averageMI)),
	}
}

func (a *Aggregator) rankCounts() map[string]int {
	counts := map[string]int{"A": 0, "B": 0, "C": 0}
	for rank, n := range a.ranks {
		counts[rank] = n
	}

	return counts
}
