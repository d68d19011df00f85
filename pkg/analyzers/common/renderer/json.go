package renderer

import "github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"

// JSONReport is the top-level structured JSON output.
type JSONReport struct {
	OverallScore      float64       `json:"overall_score"`
	OverallScoreLabel string        `json:"overall_score_label"`
	Sections          []JSONSection `json:"sections"`
}

// JSONSection represents one analyzer's output in JSON.
type JSONSection struct {
	Title        string             `json:"title"`
	Score        float64            `json:"score"`
	ScoreLabel   string             `json:"score_label"`
	Status       string             `json:"status"`
	Metrics      []JSONMetric       `json:"metrics"`
	Distribution []JSONDistribution `json:"distribution,omitempty"`
	Issues       []JSONIssue        `json:"issues"`
}

// JSONMetric is a key-value metric in JSON output.
type JSONMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// JSONDistribution is a distribution category in JSON output.
type JSONDistribution struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Count   int     `json:"count"`
}

// JSONIssue is a single issue in JSON output.
type JSONIssue struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Value    string `json:"value"`
	Severity string `json:"severity"`
}

// SectionsToJSON converts report sections to a JSONReport with the overall
// score derived from the executive summary.
func SectionsToJSON(sections []analyze.ReportSection) JSONReport {
	summary := NewExecutiveSummary(sections)

	jsonSections := make([]JSONSection, 0, len(sections))
	for _, section := range sections {
		jsonSections = append(jsonSections, newJSONSection(section))
	}

	return JSONReport{
		OverallScore:      summary.OverallScore(),
		OverallScoreLabel: summary.OverallScoreLabel(),
		Sections:          jsonSections,
	}
}

// newJSONSection flattens one section. Metrics and issues marshal as empty
// arrays rather than null when absent; distribution is omitted entirely.
func newJSONSection(section analyze.ReportSection) JSONSection {
	return JSONSection{
		Title:        section.SectionTitle(),
		Score:        section.Score(),
		ScoreLabel:   section.ScoreLabel(),
		Status:       section.StatusMessage(),
		Metrics:      jsonMetrics(section.KeyMetrics()),
		Distribution: jsonDistribution(section.Distribution()),
		Issues:       jsonIssues(section.AllIssues()),
	}
}

func jsonMetrics(metrics []analyze.Metric) []JSONMetric {
	out := make([]JSONMetric, len(metrics))
	for i, m := range metrics {
		out[i] = JSONMetric{Label: m.Label, Value: m.Value}
	}

	return out
}

func jsonDistribution(items []analyze.DistributionItem) []JSONDistribution {
	if len(items) == 0 {
		return nil
	}

	out := make([]JSONDistribution, len(items))
	for i, d := range items {
		out[i] = JSONDistribution{Label: d.Label, Percent: d.Percent, Count: d.Count}
	}

	return out
}

func jsonIssues(issues []analyze.Issue) []JSONIssue {
	out := make([]JSONIssue, len(issues))
	for i, issue := range issues {
		out[i] = JSONIssue{
			Name:     issue.Name,
			Location: issue.Location,
			Value:    issue.Value,
			Severity: issue.Severity,
		}
	}

	return out
}
