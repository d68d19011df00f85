// Package renderer provides section rendering for analyzer reports.
package renderer

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/terminal"
)

const sectionHeaderLines = 3

// SectionRenderer renders ReportSection to formatted terminal output.
type SectionRenderer struct {
	config  terminal.Config
	verbose bool
}

// Compact mode constants.
const (
	CompactBarWidth   = 10
	CompactTitleWidth = 16
)

// NewSectionRenderer creates a renderer with the given configuration.
func NewSectionRenderer(width int, verbose, noColor bool) *SectionRenderer {
	return &SectionRenderer{
		config: terminal.Config{
			Width:   width,
			NoColor: noColor,
		},
		verbose: verbose,
	}
}

// ColorForSeverity maps an issue severity string to a terminal color.
func ColorForSeverity(severity string) terminal.Color {
	switch severity {
	case analyze.SeverityGood:
		return terminal.ColorGreen
	case analyze.SeverityFair:
		return terminal.ColorYellow
	case analyze.SeverityPoor:
		return terminal.ColorRed
	default:
		return terminal.ColorBlue
	}
}

// RenderCompact produces single-line output for narrow terminals.
// Format: "Title            [████████░░] 8/10  Message".
func (r *SectionRenderer) RenderCompact(section analyze.ReportSection) string {
	title := terminal.PadRight(section.SectionTitle(), CompactTitleWidth)
	message := section.StatusMessage()

	score := section.Score()
	if score < 0 {
		label := terminal.PadRight(section.ScoreLabel(), CompactBarWidth+len(" 0/10 [] "))

		return fmt.Sprintf("%s %s %s", title, label, message)
	}

	scoreBar := terminal.FormatScoreBar(score, CompactBarWidth)
	scoreBar = r.config.Colorize(scoreBar, terminal.ColorForScore(score))

	return fmt.Sprintf("%s %s  %s", title, scoreBar, message)
}

// Render layout constants.
const (
	IndentWidth          = 2
	SummaryPrefix        = "Summary: "
	MetricsLabel         = "Key Metrics"
	MetricsPerRow        = 2
	MetricLabelWidth     = 22
	MetricValueWidth     = 14
	DistributionLabel    = "Distribution"
	DistributionBarWidth = 40
	DistLabelWidth       = 18
	IssuesLabel          = "Worst Blocks"
	AllIssuesLabel       = "All Blocks"
	DefaultTopIssues     = 5
	IssueNameWidth       = 28
	IssueLocationWidth   = 35
)

// Render produces formatted output for a ReportSection.
func (r *SectionRenderer) Render(section analyze.ReportSection) string {
	var parts []string

	title := r.config.Colorize(section.SectionTitle(), terminal.ColorBlue)
	scoreText := "Score: " + section.ScoreLabel()

	if score := section.Score(); score >= 0 {
		scoreText = r.config.Colorize(scoreText, terminal.ColorForScore(score))
	}

	parts = append(parts, terminal.DrawHeader(title, scoreText, r.config.Width))

	indent := strings.Repeat(" ", IndentWidth)
	parts = append(parts, fmt.Sprintf("\n%s%s%s", indent, SummaryPrefix, section.StatusMessage()))

	if metrics := section.KeyMetrics(); len(metrics) > 0 {
		parts = append(parts, r.renderMetrics(metrics, indent))
	}

	if distribution := section.Distribution(); len(distribution) > 0 {
		parts = append(parts, r.renderDistribution(distribution, indent))
	}

	var (
		issues      []analyze.Issue
		issuesLabel string
	)

	if r.verbose {
		issues = section.AllIssues()
		issuesLabel = AllIssuesLabel
	} else {
		issues = section.TopIssues(DefaultTopIssues)
		issuesLabel = IssuesLabel
	}

	if len(issues) > 0 {
		parts = append(parts, r.renderIssues(issues, issuesLabel, indent))
	}

	return strings.Join(parts, "\n")
}

func (r *SectionRenderer) subHeader(label, indent string) []string {
	header := r.config.Colorize(label, terminal.ColorGray)
	separatorWidth := r.config.Width - (IndentWidth * 2)

	return []string{
		"",
		indent + header,
		indent + terminal.DrawSeparator(separatorWidth),
	}
}

// renderMetrics renders the key metrics section in 2-column layout.
func (r *SectionRenderer) renderMetrics(metrics []analyze.Metric, indent string) string {
	lines := r.subHeader(MetricsLabel, indent)

	for i := 0; i < len(metrics); i += MetricsPerRow {
		var row strings.Builder

		for j := 0; j < MetricsPerRow && i+j < len(metrics); j++ {
			m := metrics[i+j]
			row.WriteString(terminal.PadRight(m.Label, MetricLabelWidth))
			row.WriteString(terminal.PadRight(m.Value, MetricValueWidth))
		}

		lines = append(lines, indent+row.String())
	}

	return strings.Join(lines, "\n")
}

// renderDistribution renders the distribution section with percent bars.
func (r *SectionRenderer) renderDistribution(items []analyze.DistributionItem, indent string) string {
	lines := make([]string, 0, sectionHeaderLines+len(items))
	lines = append(lines, r.subHeader(DistributionLabel, indent)...)

	for _, item := range items {
		bar := terminal.DrawPercentBar(item.Label, item.Percent, item.Count, DistLabelWidth, DistributionBarWidth)
		lines = append(lines, indent+bar)
	}

	return strings.Join(lines, "\n")
}

// renderIssues renders the issues section with the given label.
func (r *SectionRenderer) renderIssues(issues []analyze.Issue, label, indent string) string {
	lines := make([]string, 0, sectionHeaderLines+len(issues))
	lines = append(lines, r.subHeader(label, indent)...)

	for _, issue := range issues {
		name := terminal.PadRight(terminal.TruncateWithEllipsis(issue.Name, IssueNameWidth), IssueNameWidth)
		location := terminal.PadRight(terminal.TruncateWithEllipsis(issue.Location, IssueLocationWidth), IssueLocationWidth)
		coloredValue := r.config.Colorize(issue.Value, ColorForSeverity(issue.Severity))
		lines = append(lines, fmt.Sprintf("%s%s %s %s", indent, name, location, coloredValue))
	}

	return strings.Join(lines, "\n")
}
