package complexity

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

// Option names.
const (
	OptionNoAssert     = "no-assert"
	OptionShowClosures = "show-closures"
)

// Threshold constants.
const (
	thresholdYellow = 6
	thresholdRed    = 11
)

// Analyzer computes cyclomatic complexity per code block.
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates a complexity Analyzer with default options.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Name returns the analyzer name.
func (c *Analyzer) Name() string {
	return "complexity"
}

// Flag returns the CLI flag for the analyzer.
func (c *Analyzer) Flag() string {
	return "complexity"
}

// Description returns the analyzer description.
func (c *Analyzer) Description() string {
	return c.Descriptor().Description
}

// Descriptor returns stable analyzer metadata.
func (c *Analyzer) Descriptor() analyze.Descriptor {
	return analyze.NewDescriptor(
		analyze.ModeStatic,
		c.Name(),
		"Scores cyclomatic complexity for every function, method, and class.",
	)
}

// ListConfigurationOptions returns the configuration options for the analyzer.
func (c *Analyzer) ListConfigurationOptions() []pipeline.ConfigurationOption {
	return []pipeline.ConfigurationOption{
		{
			Name:        OptionNoAssert,
			Description: "Do not count assert statements as decision points.",
			Flag:        OptionNoAssert,
			Type:        pipeline.BoolConfigurationOption,
			Default:     false,
		},
		{
			Name:        OptionShowClosures,
			Description: "List nested blocks (closures, methods) as separate entries.",
			Flag:        OptionShowClosures,
			Type:        pipeline.BoolConfigurationOption,
			Default:     false,
		},
	}
}

// Configure applies option facts to the analyzer.
func (c *Analyzer) Configure(facts map[string]any) error {
	if v, ok := facts[OptionNoAssert].(bool); ok {
		c.opts.NoAssert = v
	}

	if v, ok := facts[OptionShowClosures].(bool); ok {
		c.opts.ShowClosures = v
	}

	return nil
}

// Thresholds returns the color-coded thresholds for complexity metrics.
func (c *Analyzer) Thresholds() analyze.Thresholds {
	return analyze.Thresholds{
		"complexity": {
			"green":  1,
			"yellow": thresholdYellow,
			"red":    thresholdRed,
		},
	}
}

// CreateVisitor returns a visitor that shares the unit's single traversal.
func (c *Analyzer) CreateVisitor(_ *syntax.Unit) analyze.AnalysisVisitor {
	return NewVisitor(c.opts)
}

// Analyze scores one unit directly, outside a shared traversal.
func (c *Analyzer) Analyze(unit *syntax.Unit) (analyze.Report, error) {
	if unit == nil || unit.Tree == nil {
		return nil, analyze.ErrNilUnit
	}

	blocks, warnings := AnalyzeTree(unit.Tree, c.opts)

	return buildReport(blocks, warnings, c.opts), nil
}

// CreateAggregator returns a new aggregator for complexity analysis.
func (c *Analyzer) CreateAggregator() analyze.ResultAggregator {
	return NewAggregator()
}

// buildReport assembles the per-file report from scored blocks.
func buildReport(blocks []*CodeBlock, warnings int, opts Options) analyze.Report {
	flat := Flatten(blocks)

	table := make([]map[string]any, 0, len(flat))
	totalComplexity := 0
	maxComplexity := 0

	for _, entry := range flat {
		block := entry.Block
		totalComplexity += block.Complexity

		if block.Complexity > maxComplexity {
			maxComplexity = block.Complexity
		}

		if entry.Depth > 0 && !opts.ShowClosures {
			continue
		}

		table = append(table, map[string]any{
			"name":       block.Name,
			"full_name":  block.FullName,
			"kind":       string(block.Kind),
			"start_line": block.StartLine,
			"end_line":   block.EndLine,
			"complexity": block.Complexity,
			"rank":       Rank(block.Complexity),
			"depth":      entry.Depth,
		})
	}

	average, _ := AverageComplexity(blocks)

	return analyze.Report{
		"analyzer_name":      "complexity",
		"total_blocks":       len(flat),
		"total_complexity":   totalComplexity,
		"max_complexity":     maxComplexity,
		"average_complexity": average,
		"blocks":             table,
		"warnings":           warnings,
		"message":            buildComplexityMessage(average),
	}
}

// FormatReport formats complexity analysis results as human-readable text.
func (c *Analyzer) FormatReport(report analyze.Report, w io.Writer) error {
	section := NewReportSection(report)
	config := terminal.NewConfig()
	r := renderer.NewSectionRenderer(config.Width, false, config.NoColor)

	_, err := fmt.Fprint(w, r.Render(section))
	if err != nil {
		return fmt.Errorf("formatreport: %w", err)
	}

	listing := blockListing(report, config.NoColor)
	if listing != "" {
		_, err = fmt.Fprintf(w, "\n%s\n", listing)
		if err != nil {
			return fmt.Errorf("formatreport: %w", err)
		}
	}

	return nil
}

// blockListing renders the per-block complexity table for a per-file report.
func blockListing(report analyze.Report, noColor bool) string {
	blocks := reportutil.GetBlocks(report, "blocks")
	if len(blocks) == 0 {
		return ""
	}

	rows := make([]common.BlockRow, 0, len(blocks))
	for _, block := range blocks {
		rows = append(rows, common.BlockRow{
			Name:  reportutil.MapString(block, "name"),
			Line:  reportutil.MapInt(block, "start_line"),
			Value: reportutil.FormatInt(reportutil.MapInt(block, "complexity")),
			Rank:  reportutil.MapString(block, "rank"),
		})
	}

	formatter := common.NewFormatter(common.FormatConfig{NoColor: noColor})

	return formatter.FormatBlockTable("Complexity", rows)
}

// FormatReportJSON formats complexity analysis results as JSON.
func (c *Analyzer) FormatReportJSON(report analyze.Report, w io.Writer) error {
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

// FormatReportYAML formats complexity analysis results as YAML.
func (c *Analyzer) FormatReportYAML(report analyze.Report, w io.Writer) error {
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

// FormatReportBinary formats complexity analysis results as a binary envelope.
func (c *Analyzer) FormatReportBinary(report analyze.Report, w io.Writer) error {
	err := reportutil.EncodeBinaryEnvelope(ComputeMetrics(report), w)
	if err != nil {
		return fmt.Errorf("formatreportbinary: %w", err)
	}

	return nil
}
