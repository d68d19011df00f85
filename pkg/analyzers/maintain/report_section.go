package maintain

import (
	"fmt"
	"sort"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// Section rendering constants.
const (
	SectionTitle = "MAINTAINABILITY"

	// DefaultStatusMessage is the fallback when no data is available.
	DefaultStatusMessage = "No maintainability data available"
)

// ReportSection implements analyze.ReportSection for maintainability
// analysis. It renders both per-file and aggregated reports.
type ReportSection struct {
	analyze.BaseReportSection

	report analyze.Report
}

// NewReportSection creates a ReportSection from a maintainability report.
func NewReportSection(report analyze.Report) *ReportSection {
	if report == nil {
		report = analyze.Report{}
	}

	msg := reportutil.GetString(report, "message")
	if msg == "" {
		msg = DefaultStatusMessage
	}

	return &ReportSection{
		BaseReportSection: analyze.BaseReportSection{
			Title:      SectionTitle,
			Message:    msg,
			ScoreValue: sectionMI(report) / miMax,
		},
		report: report,
	}
}

// sectionMI picks the index the section scores on: the file's own value,
// or the folder average for aggregated reports.
func sectionMI(report analyze.Report) float64 {
	if _, ok := report["mi"]; ok {
		return reportutil.GetFloat64(report, "mi")
	}

	return reportutil.GetFloat64(report, "average_mi")
}

// KeyMetrics returns the key metrics for the maintainability section.
func (s *ReportSection) KeyMetrics() []analyze.Metric {
	mi := sectionMI(s.report)

	metrics := []analyze.Metric{
		{Label: "Index", Value: reportutil.FormatFloat(mi)},
		{Label: "Rank", Value: reportutil.GetString(s.report, "rank")},
	}

	if files := reportutil.GetInt(s.report, "total_files"); files > 0 {
		metrics = append(metrics,
			analyze.Metric{Label: "Files", Value: reportutil.FormatInt(files)},
			analyze.Metric{Label: "Worst File", Value: reportutil.GetString(s.report, "worst_file")},
		)

		return metrics
	}

	return append(metrics,
		analyze.Metric{Label: "Volume", Value: reportutil.FormatFloat(reportutil.GetFloat64(s.report, "volume"))},
		analyze.Metric{Label: "Avg Complexity", Value: reportutil.FormatFloat(reportutil.GetFloat64(s.report, "avg_complexity"))},
		analyze.Metric{Label: "Source Lines", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "sloc"))},
		analyze.Metric{Label: "Comment %", Value: reportutil.FormatFloat(reportutil.GetFloat64(s.report, "comment_percent"))},
	)
}

// Distribution returns the rank distribution for aggregated reports.
func (s *ReportSection) Distribution() []analyze.DistributionItem {
	counts, ok := s.report["rank_counts"].(map[string]int)
	if !ok {
		return nil
	}

	total := counts["A"] + counts["B"] + counts["C"]
	if total == 0 {
		return nil
	}

	items := make([]analyze.DistributionItem, 0, len(counts))
	for _, rank := range []string{"A", "B", "C"} {
		items = append(items, analyze.DistributionItem{
			Label:   fmt.Sprintf("Rank %s", rank),
			Percent: reportutil.Pct(counts[rank], total),
			Count:   counts[rank],
		})
	}

	return items
}

// TopIssues returns the N least maintainable files.
func (s *ReportSection) TopIssues(n int) []analyze.Issue {
	issues := s.buildSortedIssues()
	if n >= len(issues) {
		return issues
	}

	return issues[:n]
}

// AllIssues returns every file below rank A, worst first.
func (s *ReportSection) AllIssues() []analyze.Issue {
	return s.buildSortedIssues()
}

func (s *ReportSection) buildSortedIssues() []analyze.Issue {
	files := reportutil.GetBlocks(s.report, "files")
	if len(files) == 0 {
		return nil
	}

	type scored struct {
		issue analyze.Issue
		mi    float64
	}

	entries := make([]scored, 0, len(files))

	for _, file := range files {
		rank := reportutil.MapString(file, "rank")
		if rank == "A" {
			continue
		}

		mi := reportutil.MapFloat64(file, "mi")

		entries = append(entries, scored{
			mi: mi,
			issue: analyze.Issue{
				Name:     reportutil.MapString(file, "file"),
				Location: fmt.Sprintf("%d lines", reportutil.MapInt(file, "sloc")),
				Value:    fmt.Sprintf("%s (%s)", reportutil.FormatFloat(mi), rank),
				Severity: severityForRank(rank),
			},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].mi != entries[j].mi {
			return entries[i].mi < entries[j].mi
		}

		return entries[i].issue.Name < entries[j].issue.Name
	})

	issues := make([]analyze.Issue, 0, len(entries))
	for _, entry := range entries {
		issues = append(issues, entry.issue)
	}

	return issues
}

func severityForRank(rank string) string {
	switch rank {
	case "A":
		return analyze.SeverityGood
	case "B":
		return analyze.SeverityFair
	default:
		return analyze.SeverityPoor
	}
}

// CreateReportSection creates a ReportSection from report data.
func (m *Analyzer) CreateReportSection(report analyze.Report) analyze.ReportSection {
	return NewReportSection(report)
}
