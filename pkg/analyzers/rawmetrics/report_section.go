package rawmetrics

import (
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// Section rendering constants.
const (
	SectionTitle = "RAW METRICS"

	// DefaultStatusMessage is the fallback when no data is available.
	DefaultStatusMessage = "No raw metrics available"
)

// ReportSection implements analyze.ReportSection for raw metrics. Line
// counts carry no quality judgment, so the section is informational.
type ReportSection struct {
	analyze.BaseReportSection

	report analyze.Report
}

// NewReportSection creates a ReportSection from a raw metrics report.
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
			ScoreValue: analyze.ScoreInfoOnly,
		},
		report: report,
	}
}

// KeyMetrics returns the key metrics for the raw metrics section.
func (s *ReportSection) KeyMetrics() []analyze.Metric {
	return []analyze.Metric{
		{Label: "Physical Lines", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "loc"))},
		{Label: "Logical Lines", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "lloc"))},
		{Label: "Source Lines", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "sloc"))},
		{Label: "Comment Lines", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "comments"))},
		{Label: "Docstring Lines", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "multi"))},
		{Label: "Blank Lines", Value: reportutil.FormatInt(reportutil.GetInt(s.report, "blank"))},
	}
}

// Distribution returns the line partition as a distribution chart.
func (s *ReportSection) Distribution() []analyze.DistributionItem {
	total := reportutil.GetInt(s.report, "loc")
	if total == 0 {
		return nil
	}

	code := reportutil.GetInt(s.report, "sloc")
	multi := reportutil.GetInt(s.report, "multi")
	commentOnly := reportutil.GetInt(s.report, "single_comments")
	blank := reportutil.GetInt(s.report, "blank")

	return []analyze.DistributionItem{
		{Label: "Code", Percent: reportutil.Pct(code, total), Count: code},
		{Label: "Docstrings", Percent: reportutil.Pct(multi, total), Count: multi},
		{Label: "Comments", Percent: reportutil.Pct(commentOnly, total), Count: commentOnly},
		{Label: "Blank", Percent: reportutil.Pct(blank, total), Count: blank},
	}
}

// CreateReportSection creates a ReportSection from report data.
func (r *Analyzer) CreateReportSection(report analyze.Report) analyze.ReportSection {
	return NewReportSection(report)
}
