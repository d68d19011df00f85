package halstead

import (
	"fmt"
	"sort"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// Section rendering constants.
const (
	SectionTitle = "HALSTEAD"

	// Score mapping from file difficulty (inverted: harder is worse).
	scoreExcellentMax = 5.0
	scoreGoodMax      = 15.0
	scoreFairMax      = 30.0

	scoreExcellent = 1.0
	scoreGood      = 0.8
	scoreFair      = 0.6
	scorePoor      = 0.3

	// Issue severity thresholds on per-function effort.
	severityFairMin = 10000.0
	severityPoorMin = 50000.0

	// DefaultStatusMessage is the fallback when no data is available.
	DefaultStatusMessage = "No Halstead data available"
)

// ReportSection implements analyze.ReportSection for Halstead analysis.
type ReportSection struct {
	analyze.BaseReportSection

	report analyze.Report
}

// NewReportSection creates a ReportSection from a Halstead report.
func NewReportSection(report analyze.Report) *ReportSection {
	if report == nil {
		report = analyze.Report{}
	}

	difficulty := reportutil.GetFloat64(report, "difficulty")

	msg := reportutil.GetString(report, "message")
	if msg == "" {
		msg = DefaultStatusMessage
	}

	return &ReportSection{
		BaseReportSection: analyze.BaseReportSection{
			Title:      SectionTitle,
			Message:    msg,
			ScoreValue: calculateScore(difficulty),
		},
		report: report,
	}
}

// KeyMetrics returns the key metrics for the Halstead section.
func (s *ReportSection) KeyMetrics() []analyze.Metric {
	return []analyze.Metric{
		{Label: "Total Functions", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "total_functions"))},
		{Label: "Vocabulary", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "vocabulary"))},
		{Label: "Volume", Value: reportutil.FormatFloat(reportutil.GetFloat64(s.report, "volume"))},
		{Label: "Difficulty", Value: reportutil.FormatFloat(reportutil.GetFloat64(s.report, "difficulty"))},
		{Label: "Effort", Value: reportutil.FormatFloat(reportutil.GetFloat64(s.report, "effort"))},
		{Label: "Est. Bugs", Value: reportutil.FormatFloat(reportutil.GetFloat64(s.report, "delivered_bugs"))},
	}
}

// Distribution returns the volume distribution over all functions.
func (s *ReportSection) Distribution() []analyze.DistributionItem {
	functions := reportutil.GetBlocks(s.report, "functions")
	if len(functions) == 0 {
		return nil
	}

	var low, medium, high, veryHigh int

	for _, fn := range functions {
		switch vol := reportutil.MapFloat64(fn, "volume"); {
		case vol <= volumeLowMax:
			low++
		case vol <= volumeMediumMax:
			medium++
		case vol <= volumeHighMax:
			high++
		default:
			veryHigh++
		}
	}

	total := len(functions)

	return []analyze.DistributionItem{
		{Label: "Low (<=100)", Percent: reportutil.Pct(low, total), Count: low},
		{Label: "Medium (101-1000)", Percent: reportutil.Pct(medium, total), Count: medium},
		{Label: "High (1001-5000)", Percent: reportutil.Pct(high, total), Count: high},
		{Label: "Very High (>5000)", Percent: reportutil.Pct(veryHigh, total), Count: veryHigh},
	}
}

// TopIssues returns the top N functions by effort descending.
func (s *ReportSection) TopIssues(n int) []analyze.Issue {
	issues := s.buildSortedIssues()
	if n >= len(issues) {
		return issues
	}

	return issues[:n]
}

// AllIssues returns all functions as issues sorted by effort descending.
func (s *ReportSection) AllIssues() []analyze.Issue {
	return s.buildSortedIssues()
}

func (s *ReportSection) buildSortedIssues() []analyze.Issue {
	functions := reportutil.GetBlocks(s.report, "functions")
	if len(functions) == 0 {
		return nil
	}

	type scored struct {
		issue  analyze.Issue
		effort float64
	}

	entries := make([]scored, 0, len(functions))

	for _, fn := range functions {
		effort := reportutil.MapFloat64(fn, "effort")

		entries = append(entries, scored{
			effort: effort,
			issue: analyze.Issue{
				Name:     reportutil.MapString(fn, "name"),
				Location: fmt.Sprintf("line %d", reportutil.MapInt(fn, "start_line")),
				Value:    "effort=" + reportutil.FormatFloat(effort),
				Severity: severityForEffort(effort),
			},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].effort != entries[j].effort {
			return entries[i].effort > entries[j].effort
		}

		return entries[i].issue.Name < entries[j].issue.Name
	})

	issues := make([]analyze.Issue, 0, len(entries))
	for _, entry := range entries {
		issues = append(issues, entry.issue)
	}

	return issues
}

func calculateScore(difficulty float64) float64 {
	switch {
	case difficulty <= scoreExcellentMax:
		return scoreExcellent
	case difficulty <= scoreGoodMax:
		return scoreGood
	case difficulty <= scoreFairMax:
		return scoreFair
	default:
		return scorePoor
	}
}

func severityForEffort(effort float64) string {
	switch {
	case effort >= severityPoorMin:
		return analyze.SeverityPoor
	case effort >= severityFairMin:
		return analyze.SeverityFair
	default:
		return analyze.SeverityGood
	}
}

// CreateReportSection creates a ReportSection from report data.
func (h *Analyzer) CreateReportSection(report analyze.Report) analyze.ReportSection {
	return NewReportSection(report)
}
