package maintain

import (
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// ComputedMetrics is the machine-readable report shape for JSON and YAML.
type ComputedMetrics struct {
	File           string  `json:"file,omitempty"  yaml:"file,omitempty"`
	MI             float64 `json:"mi"              yaml:"mi"`
	Rank           string  `json:"rank"            yaml:"rank"`
	Volume         float64 `json:"volume"          yaml:"volume"`
	AvgComplexity  float64 `json:"avg_complexity"  yaml:"avg_complexity"`
	SLOC           int     `json:"sloc"            yaml:"sloc"`
	CommentPercent float64 `json:"comment_percent" yaml:"comment_percent"`
	Message        string  `json:"message"         yaml:"message"`
}

// AnalyzerName identifies the producing analyzer.
func (m *ComputedMetrics) AnalyzerName() string {
	return "maintainability"
}

// ToJSON returns the value to marshal for JSON output.
func (m *ComputedMetrics) ToJSON() any {
	return m
}

// ToYAML returns the value to marshal for YAML output.
func (m *ComputedMetrics) ToYAML() any {
	return m
}

// ComputeMetrics converts a report map into the typed metrics shape.
func ComputeMetrics(report analyze.Report) *ComputedMetrics {
	return &ComputedMetrics{
		File:           reportutil.GetString(report, "file"),
		MI:             reportutil.GetFloat64(report, "mi"),
		Rank:           reportutil.GetString(report, "rank"),
		Volume:         reportutil.GetFloat64(report, "volume"),
		AvgComplexity:  reportutil.GetFloat64(report, "avg_complexity"),
		SLOC:           reportutil.GetInt(report, "sloc"),
		CommentPercent: reportutil.GetFloat64(report, "comment_percent"),
		Message:        reportutil.GetString(report, "message"),
	}
}
