package rawmetrics

import (
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// ComputedMetrics is the machine-readable report shape for JSON and YAML.
type ComputedMetrics struct {
	LOC            int    `json:"loc"             yaml:"loc"`
	LLOC           int    `json:"lloc"            yaml:"lloc"`
	SLOC           int    `json:"sloc"            yaml:"sloc"`
	Comments       int    `json:"comments"        yaml:"comments"`
	SingleComments int    `json:"single_comments" yaml:"single_comments"`
	Multi          int    `json:"multi"           yaml:"multi"`
	Blank          int    `json:"blank"           yaml:"blank"`
	Message        string `json:"message"         yaml:"message"`
}

// AnalyzerName identifies the producing analyzer.
func (m *ComputedMetrics) AnalyzerName() string {
	return "raw"
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
		LOC:            reportutil.GetInt(report, "loc"),
		LLOC:           reportutil.GetInt(report, "lloc"),
		SLOC:           reportutil.GetInt(report, "sloc"),
		Comments:       reportutil.GetInt(report, "comments"),
		SingleComments: reportutil.GetInt(report, "single_comments"),
		Multi:          reportutil.GetInt(report, "multi"),
		Blank:          reportutil.GetInt(report, "blank"),
		Message:        reportutil.GetString(report, "message"),
	}
}
