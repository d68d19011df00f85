package halstead

import (
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/renderer"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/terminal"
	"github.com/Sumatoshi-tech/codegauge/pkg/pipeline"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

// Message and threshold tiers on the file-level measures.
const (
	volumeLowMax     = 100.0
	volumeMediumMax  = 1000.0
	volumeHighMax    = 5000.0
	difficultyLowMax = 5.0
	difficultyMedMax = 15.0
	difficultyHiMax  = 30.0
	effortLowMax     = 1000.0
	effortMediumMax  = 10000.0
	effortHighMax    = 50000.0
)

// Analyzer computes Halstead metrics per function and per file.
type Analyzer struct{}

// NewAnalyzer creates a Halstead Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Name returns the analyzer name.
func (h *Analyzer) Name() string {
	return "halstead"
}

// Flag returns the CLI flag for the analyzer.
func (h *Analyzer) Flag() string {
	return "halstead"
}

// Description returns the analyzer description.
func (h *Analyzer) Description() string {
	return h.Descriptor().Description
}

// Descriptor returns stable analyzer metadata.
func (h *Analyzer) Descriptor() analyze.Descriptor {
	return analyze.NewDescriptor(
		analyze.ModeStatic,
		h.Name(),
		"Derives Halstead size, difficulty, and effort measures from operator and operand counts.",
	)
}

// ListConfigurationOptions returns the configuration options for the analyzer.
func (h *Analyzer) ListConfigurationOptions() []pipeline.ConfigurationOption {
	return []pipeline.ConfigurationOption{}
}

// Configure applies option facts to the analyzer.
func (h *Analyzer) Configure(_ map[string]any) error {
	return nil
}

// Thresholds returns the color-coded thresholds for Halstead metrics.
func (h *Analyzer) Thresholds() analyze.Thresholds {
	return analyze.Thresholds{
		"volume": {
			"green":  volumeLowMax,
			"yellow": volumeMediumMax,
			"red":    volumeHighMax,
		},
		"difficulty": {
			"green":  difficultyLowMax,
			"yellow": difficultyMedMax,
			"red":    difficultyHiMax,
		},
		"effort": {
			"green":  effortLowMax,
			"yellow": effortMediumMax,
			"red":    effortHighMax,
		},
	}
}

// CreateVisitor returns a visitor that shares the unit's single traversal.
func (h *Analyzer) CreateVisitor(_ *syntax.Unit) analyze.AnalysisVisitor {
	return NewVisitor()
}

// Analyze counts one unit directly, outside a shared traversal.
func (h *Analyzer) Analyze(unit *syntax.Unit) (analyze.Report, error) {
	if unit == nil || unit.Tree == nil {
		return nil, analyze.ErrNilUnit
	}

	blocks, fileMetrics := AnalyzeTree(unit.Tree)

	return buildReport(blocks, fileMetrics), nil
}

// CreateAggregator returns a new aggregator for Halstead analysis.
func (h *Analyzer) CreateAggregator() analyze.ResultAggregator {
	return NewAggregator()
}

// buildReport assembles the per-file report from function and file metrics.
func buildReport(blocks []*BlockMetrics, fileMetrics Metrics) analyze.Report {
	functions := make([]map[string]any, 0, len(blocks))
	for _, block := range blocks {
		functions = append(functions, map[string]any{
			"name":               block.Name,
			"start_line":         block.StartLine,
			"end_line":           block.EndLine,
			"volume":             block.Volume,
			"difficulty":         block.Difficulty,
			"effort":             block.Effort,
			"time_to_program":    block.TimeToProgram,
			"delivered_bugs":     block.DeliveredBugs,
			"distinct_operators": block.DistinctOperators,
			"distinct_operands":  block.DistinctOperands,
			"vocabulary":         block.Vocabulary,
			"length":             block.Length,
		})
	}

	return analyze.Report{
		"analyzer_name":      "halstead",
		"total_functions":    len(blocks),
		"volume":             fileMetrics.Volume,
		"difficulty":         fileMetrics.Difficulty,
		"effort":             fileMetrics.Effort,
		"time_to_program":    fileMetrics.TimeToProgram,
		"delivered_bugs":     fileMetrics.DeliveredBugs,
		"distinct_operators": fileMetrics.DistinctOperators,
		"distinct_operands":  fileMetrics.DistinctOperands,
		"total_operators":    fileMetrics.TotalOperators,
		"total_operands":     fileMetrics.TotalOperands,
		"vocabulary":         fileMetrics.Vocabulary,
		"length":             fileMetrics.Length,
		"estimated_length":   fileMetrics.EstimatedLength,
		"functions":          functions,
		"message":            buildHalsteadMessage(fileMetrics.Volume, fileMetrics.Difficulty, fileMetrics.Effort),
	}
}

// buildHalsteadMessage summarizes the combined volume, difficulty, and
// effort tiers.
func buildHalsteadMessage(volume, difficulty, effort float64) string {
	switch {
	case volume <= volumeLowMax && difficulty <= difficultyLowMax && effort <= effortLowMax:
		return "Excellent Halstead profile - code is small and simple"
	case volume <= volumeMediumMax && difficulty <= difficultyMedMax && effort <= effortMediumMax:
		return "Good Halstead profile - code is reasonably complex"
	case volume <= volumeHighMax && difficulty <= difficultyHiMax && effort <= effortHighMax:
		return "Fair Halstead profile - consider simplifying some functions"
	default:
		return "High Halstead effort - code should be refactored"
	}
}

// FormatReport formats Halstead analysis results as human-readable text.
func (h *Analyzer) FormatReport(report analyze.Report, w io.Writer) error {
	section := NewReportSection(report)
	config := terminal.NewConfig()
	r := renderer.NewSectionRenderer(config.Width, false, config.NoColor)

	_, err := fmt.Fprint(w, r.Render(section))
	if err != nil {
		return fmt.Errorf("formatreport: %w", err)
	}

	listing := functionListing(report, config.NoColor)
	if listing != "" {
		_, err = fmt.Fprintf(w, "\n%s\nEstimated effort %s in %s\n",
			listing,
			common.HumanizeEffort(reportutil.GetFloat64(report, "effort")),
			common.HumanizeSeconds(reportutil.GetFloat64(report, "time_to_program")))
		if err != nil {
			return fmt.Errorf("formatreport: %w", err)
		}
	}

	return nil
}

// functionListing renders the per-function volume table for a per-file report.
func functionListing(report analyze.Report, noColor bool) string {
	functions := reportutil.GetBlocks(report, "functions")
	if len(functions) == 0 {
		return ""
	}

	rows := make([]common.BlockRow, 0, len(functions))
	for _, function := range functions {
		rows = append(rows, common.BlockRow{
			Name:  reportutil.MapString(function, "name"),
			Line:  reportutil.MapInt(function, "start_line"),
			Value: reportutil.FormatFloat(reportutil.MapFloat64(function, "volume")),
		})
	}

	formatter := common.NewFormatter(common.FormatConfig{NoColor: noColor})

	return formatter.FormatBlockTable("Volume", rows)
}

// FormatReportJSON formats Halstead analysis results as JSON.
func (h *Analyzer) FormatReportJSON(report analyze.Report, w io.Writer) error {
	data, err := renderer.RenderMetricsJSON(ComputeMetrics(report))
	if err != nil {
		return fmt.Errorf("formatreportjson: %w", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("formatreportjson: %w", err)
	}

	return nil
}

// FormatReportYAML formats Halstead analysis results as YAML.
func (h *Analyzer) FormatReportYAML(report analyze.Report, w io.Writer) error {
	data, err := renderer.RenderMetricsYAML(ComputeMetrics(report))
	if err != nil {
		return fmt.Errorf("formatreportyaml: %w", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("formatreportyaml: %w", err)
	}

	return nil
}

// FormatReportBinary formats Halstead analysis results as a binary envelope.
func (h *Analyzer) FormatReportBinary(report analyze.Report, w io.Writer) error {
	err := reportutil.EncodeBinaryEnvelope(ComputeMetrics(report), w)
	if err != nil {
		return fmt.Errorf("formatreportbinary: %w", err)
	}

	return nil
}
