package complexity

import (
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// BlockMetrics is the serializable per-block entry.
type BlockMetrics struct {
	Name       string `json:"name"       yaml:"name"`
	FullName   string `json:"full_name"  yaml:"full_name"`
	Kind       string `json:"kind"       yaml:"kind"`
	StartLine  int    `json:"start_line" yaml:"start_line"`
	EndLine    int    `json:"end_line"   yaml:"end_line"`
	Complexity int    `json:"complexity" yaml:"complexity"`
	Rank       string `json:"rank"       yaml:"rank"`
	Depth      int    `json:"depth"      yaml:"depth"`
}

// ComputedMetrics is the serializable complexity report.
type ComputedMetrics struct {
	TotalBlocks       int            `json:"total_blocks"       yaml:"total_blocks"`
	TotalComplexity   int            `json:"total_complexity"   yaml:"total_complexity"`
	MaxComplexity     int            `json:"max_complexity"     yaml:"max_complexity"`
	AverageComplexity float64        `json:"average_complexity" yaml:"average_complexity"`
	Warnings          int            `json:"warnings"           yaml:"warnings"`
	Blocks            []BlockMetrics `json:"blocks"             yaml:"blocks"`
}

// AnalyzerName returns the analyzer identifier.
func (m *ComputedMetrics) AnalyzerName() string {
	return "complexity"
}

// ToJSON returns the metrics for JSON marshaling.
func (m *ComputedMetrics) ToJSON() any {
	return m
}

// ToYAML returns the metrics for YAML marshaling.
func (m *ComputedMetrics) ToYAML() any {
	return m
}

// ComputeMetrics converts a complexity report into serializable metrics.
func ComputeMetrics(report analyze.Report) *ComputedMetrics {
	table := reportutil.GetBlocks(report, "blocks")
	blocks := make([]BlockMetrics, 0, len(table))

	for _, row := range table {
		blocks = append(blocks, BlockMetrics{
			Name:       reportutil.MapString(row, "name"),
			FullName:   reportutil.MapString(row, "full_name"),
			Kind:       reportutil.MapString(row, "kind"),
			StartLine:  reportutil.MapInt(row, "start_line"),
			EndLine:    reportutil.MapInt(row, "end_line"),
			Complexity: reportutil.MapInt(row, "complexity"),
			Rank:       reportutil.MapString(row, "rank"),
			Depth:      reportutil.MapInt(row, "depth"),
		})
	}

	return &ComputedMetrics{
		TotalBlocks:       reportutil.GetInt(report, "total_blocks"),
		TotalComplexity:   reportutil.GetInt(report, "total_complexity"),
		MaxComplexity:     reportutil.GetInt(report, "max_complexity"),
		AverageComplexity: reportutil.GetFloat64(report, "average_complexity"),
		Warnings:          reportutil.GetInt(report, "warnings"),
		Blocks:            blocks,
	}
}
