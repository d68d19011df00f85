package halstead

import (
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

// FunctionMetrics is the machine-readable per-function entry.
type FunctionMetrics struct {
	Name          string  `json:"name"            yaml:"name"`
	StartLine     int     `json:"start_line"      yaml:"start_line"`
	EndLine       int     `json:"end_line"        yaml:"end_line"`
	Volume        float64 `json:"volume"          yaml:"volume"`
	Difficulty    float64 `json:"difficulty"      yaml:"difficulty"`
	Effort        float64 `json:"effort"          yaml:"effort"`
	TimeToProgram float64 `json:"time_to_program" yaml:"time_to_program"`
	DeliveredBugs float64 `json:"delivered_bugs"  yaml:"delivered_bugs"`
}

// ComputedMetrics is the machine-readable report shape for JSON and YAML.
type ComputedMetrics struct {
	TotalFunctions    int               `json:"total_functions"    yaml:"total_functions"`
	Volume            float64           `json:"volume"             yaml:"volume"`
	Difficulty        float64           `json:"difficulty"         yaml:"difficulty"`
	Effort            float64           `json:"effort"             yaml:"effort"`
	TimeToProgram     float64           `json:"time_to_program"    yaml:"time_to_program"`
	DeliveredBugs     float64           `json:"delivered_bugs"     yaml:"delivered_bugs"`
	DistinctOperators int               `json:"distinct_operators" yaml:"distinct_operators"`
	DistinctOperands  int               `json:"distinct_operands"  yaml:"distinct_operands"`
	TotalOperators    int               `json:"total_operators"    yaml:"total_operators"`
	TotalOperands     int               `json:"total_operands"     yaml:"total_operands"`
	Vocabulary        int               `json:"vocabulary"         yaml:"vocabulary"`
	Length            int               `json:"length"             yaml:"length"`
	EstimatedLength   float64           `json:"estimated_length"   yaml:"estimated_length"`
	Functions         []FunctionMetrics `json:"functions"          yaml:"functions"`
	Message           string            `json:"message"            yaml:"message"`
}

// AnalyzerName identifies the producing analyzer.
func (m *ComputedMetrics) AnalyzerName() string {
	return "halstead"
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
	functions := reportutil.GetBlocks(report, "functions")

	entries := make([]FunctionMetrics, 0, len(functions))
	for _, fn := range functions {
		entries = append(entries, FunctionMetrics{
			Name:          reportutil.MapString(fn, "name"),
			StartLine:     reportutil.MapInt(fn, "start_line"),
			EndLine:       reportutil.MapInt(fn, "end_line"),
			Volume:        reportutil.MapFloat64(fn, "volume"),
			Difficulty:    reportutil.MapFloat64(fn, "difficulty"),
			Effort:        reportutil.MapFloat64(fn, "effort"),
			TimeToProgram: reportutil.MapFloat64(fn, "time_to_program"),
			DeliveredBugs: reportutil.MapFloat64(fn, "delivered_bugs"),
		})
	}

	return &ComputedMetrics{
		TotalFunctions:    reportutil.GetInt(report, "total_functions"),
		Volume:            reportutil.GetFloat64(report, "volume"),
		Difficulty:        reportutil.GetFloat64(report, "difficulty"),
		Effort:            reportutil.GetFloat64(report, "effort"),
		TimeToProgram:     reportutil.GetFloat64(report, "time_to_program"),
		DeliveredBugs:     reportutil.GetFloat64(report, "delivered_bugs"),
		DistinctOperators: reportutil.GetInt(report, "distinct_operators"),
		DistinctOperands:  reportutil.GetInt(report, "distinct_operands"),
		TotalOperators:    reportutil.GetInt(report, "total_operators"),
		TotalOperands:     reportutil.GetInt(report, "total_operands"),
		Vocabulary:        reportutil.GetInt(report, "vocabulary"),
		Length:            reportutil.GetInt(report, "length"),
		EstimatedLength:   reportutil.GetFloat64(report, "estimated_length"),
		Functions:         entries,
		Message:           reportutil.GetString(report, "message"),
	}
}
