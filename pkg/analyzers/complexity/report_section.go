package complexity

import (
	"fmt"
	"sort"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// Section rendering constants.
const (
	SectionTitle = "COMPLEXITY"

	// Score mapping from average complexity.
	scoreExcellentMax = 1.0
	scoreGoodMax      = 3.0
	scoreFairMax      = 5.0
	scoreModerateMax  = 7.0
	scorePoorMax      = 10.0

	scoreExcellent = 1.0
	scoreGood      = 0.8
	scoreFair      = 0.6
	scoreModerate  = 0.4
	scorePoor      = 0.2
	scoreCritical  = 0.1

	// DefaultStatusMessage is the fallback when no data is available.
	DefaultStatusMessage = "No complexity data available"
)

// ReportSection implements analyze.ReportSection for complexity analysis.
type ReportSection struct {
	analyze.BaseReportSection

	report analyze.Report
}

// NewReportSection creates a ReportSection from a complexity report.
func NewReportSection(report analyze.Report) *ReportSection {
	if report == nil {
		report = analyze.Report{}
	}

	average := reportutil.GetFloat64(report, "average_complexity")

	msg := reportutil.GetString(report, "message")
	if msg == "" {
		msg = DefaultStatusMessage
	}

	return &ReportSection{
		BaseReportSection: analyze.BaseReportSection{
			Title:      SectionTitle,
			Message:    msg,
			ScoreValue: calculateScore(average),
		},
		report: report,
	}
}

// KeyMetrics returns the key metrics for the complexity section.
func (s *ReportSection) KeyMetrics() []analyze.Metric {
	return []analyze.Metric{
		{Label: "Total Blocks", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "total_blocks"))},
		{Label: "Avg Complexity", Value: fmt.Sprintf("%.1f", reportutil.GetFloat64(s.report, "average_complexity"))},
		{Label: "Max Complexity", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "max_complexity"))},
		{Label: "Total Complexity", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "total_complexity"))},
		{Label: "Warnings", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "warnings"))},
	}
}

// Distribution returns the rank distribution over all blocks.
func (s *ReportSection) Distribution() []analyze.DistributionItem {
	blocks := reportutil.GetBlocks(s.report, "blocks")
	if len(blocks) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, block := range blocks {
		counts[reportutil.MapString(block, "rank")]++
	}

	labels := []struct {
		rank  string
		label string
	}{
		{"A", "A (1-5)"},
		{"B", "B (6-10)"},
		{"C", "C (11-20)"},
		{"D", "D (21-30)"},
		{"E", "E (31-40)"},
		{"F", "F (41+)"},
	}

	total := len(blocks)
	items := make([]analyze.DistributionItem, 0, len(labels))

	for _, entry := range labels {
		count := counts[entry.rank]
		items = append(items, analyze.DistributionItem{
			Label:   entry.label,
			Percent: pct(count, total),
			Count:   count,
		})
	}

	return items
}

// TopIssues returns the top N blocks sorted by complexity descending.
func (s *ReportSection) TopIssues(n int) []analyze.Issue {
	issues := s.buildSortedIssues()
	if n >= len(issues) {
		return issues
	}

	return issues[:n]
}

// AllIssues returns all blocks as issues sorted by complexity descending.
func (s *ReportSection) AllIssues() []analyze.Issue {
	return s.buildSortedIssues()
}

func (s *ReportSection) buildSortedIssues() []analyze.Issue {
	blocks := reportutil.GetBlocks(s.report, "blocks")
	if len(blocks) == 0 {
		return nil
	}

	type scored struct {
		issue analyze.Issue
		cc    int
	}

	entries := make([]scored, 0, len(blocks))

	for _, block := range blocks {
		cc := reportutil.MapInt(block, "complexity")
		rank := reportutil.MapString(block, "rank")

		entries = append(entries, scored{
			cc: cc,
			issue: analyze.Issue{
				Name:     reportutil.MapString(block, "full_name"),
				Location: fmt.Sprintf("line %d", reportutil.MapInt(block, "start_line")),
				Value:    fmt.Sprintf("%d (%s)", cc, rank),
				Severity: severityForRank(rank),
			},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].cc != entries[j].cc {
			return entries[i].cc > entries[j].cc
		}

		return entries[i].issue.Name < entries[j].issue.Name
	})

	issues := make([]analyze.Issue, 0, len(entries))
	for _, entry := range entries {
		issues = append(issues, entry.issue)
	}

	return issues
}

func calculateScore(average float64) float64 {
	switch {
	case average <= scoreExcellentMax:
		return scoreExcellent
	case average <= scoreGoodMax:
		return scoreGood
	case average <= scoreFairMax:
		return scoreFair
	case average <= scoreModerateMax:
		return scoreModerate
	case average <= scorePoorMax:
		return scorePoor
	default:
		return scoreCritical
	}
}

func severityForRank(rank string) string {
	switch rank {
	case "A":
		return analyze.SeverityGood
	case "B", "C":
		return analyze.SeverityFair
	default:
		return analyze.SeverityPoor
	}
}

func pct(count, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(count) / float64(total)
}

// CreateReportSection creates a ReportSection from report data.
func (c *Analyzer) CreateReportSection(report analyze.Report) analyze.ReportSection {
	return NewReportSection(report)
}
