package rawmetrics

import (
	"errors"
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/renderer"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/terminal"
	"github.com/Sumatoshi-tech/codegauge/pkg/pipeline"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

// OptionMulti toggles docstring lines counting as comment-equivalent.
const OptionMulti = "multi"

// ErrNoTokens is returned when a unit carries no token stream.
var ErrNoTokens = errors.New("token stream is missing")

// Analyzer counts raw line metrics from the token stream.
type Analyzer struct {
	opts Options
}

// NewAnalyzer creates a raw metrics Analyzer with docstring treatment on.
func NewAnalyzer() *Analyzer {
	return &Analyzer{opts: Options{MultiAsComments: true}}
}

// Name returns the analyzer name.
func (r *Analyzer) Name() string {
	return "raw"
}

// Flag returns the CLI flag for the analyzer.
func (r *Analyzer) Flag() string {
	return "raw"
}

// Description returns the analyzer description.
func (r *Analyzer) Description() string {
	return r.Descriptor().Description
}

// Descriptor returns stable analyzer metadata.
func (r *Analyzer) Descriptor() analyze.Descriptor {
	return analyze.NewDescriptor(
		analyze.ModeStatic,
		r.Name(),
		"Counts physical, logical, source, comment, and blank lines.",
	)
}

// ListConfigurationOptions returns the configuration options for the analyzer.
func (r *Analyzer) ListConfigurationOptions() []pipeline.ConfigurationOption {
	return []pipeline.ConfigurationOption{
		{
			Name:        OptionMulti,
			Description: "Treat standalone multi-line strings (docstrings) as comments.",
			Flag:        OptionMulti,
			Type:        pipeline.BoolConfigurationOption,
			Default:     true,
		},
	}
}

// Configure applies option facts to the analyzer.
func (r *Analyzer) Configure(facts map[string]any) error {
	if v, ok := facts[OptionMulti].(bool); ok {
		r.opts.MultiAsComments = v
	}

	return nil
}

// Thresholds returns the color-coded thresholds for raw metrics.
func (r *Analyzer) Thresholds() analyze.Thresholds {
	return analyze.Thresholds{}
}

// Analyze classifies one unit's token stream.
func (r *Analyzer) Analyze(unit *syntax.Unit) (analyze.Report, error) {
	if unit == nil || unit.Tokens == nil {
		return nil, ErrNoTokens
	}

	counts := Classify(unit.Tokens, r.opts)

	return buildReport(counts), nil
}

// CreateAggregator returns a new aggregator for raw metrics.
func (r *Analyzer) CreateAggregator() analyze.ResultAggregator {
	return NewAggregator()
}

// buildReport assembles the per-file report from the counts.
func buildReport(counts Counts) analyze.Report {
	return analyze.Report{
		"analyzer_name":   "raw",
		"loc":             counts.Total,
		"lloc":            counts.LLOC,
		"sloc":            counts.Code,
		"comments":        counts.Comments,
		"single_comments": counts.CommentOnly,
		"multi":           counts.Multi,
		"blank":           counts.Blank,
		"message":         buildRawMessage(counts),
	}
}

// buildRawMessage summarizes the comment density of the file set.
func buildRawMessage(counts Counts) string {
	if counts.Code == 0 {
		return "No source lines found"
	}

	ratio := float64(counts.Comments+counts.Multi) / float64(counts.Code)

	switch {
	case ratio >= goodCommentRatio:
		return "Well documented - healthy comment density"
	case ratio >= fairCommentRatio:
		return "Moderately documented - some sections lack comments"
	default:
		return "Sparsely documented - consider adding comments"
	}
}

// Comment ratio tiers on (comments + multi) / sloc.
const (
	goodCommentRatio = 0.2
	fairCommentRatio = 0.05
)

// FormatReport formats raw metrics as human-readable text.
func (r *Analyzer) FormatReport(report analyze.Report, w io.Writer) error {
	section := NewReportSection(report)
	config := terminal.NewConfig()
	render := renderer.NewSectionRenderer(config.Width, false, config.NoColor)

	_, err := fmt.Fprint(w, render.Render(section))
	if err != nil {
		return fmt.Errorf("formatreport: %w", err)
	}

	return nil
}

// FormatReportJSON formats raw metrics as JSON.
func (r *Analyzer) FormatReportJSON(report analyze.Report, w io.Writer) error {
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

// FormatReportYAML formats raw metrics as YAML.
func (r *Analyzer) FormatReportYAML(report analyze.Report, w io.Writer) error {
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

// FormatReportBinary formats raw metrics as a binary envelope.
func (r *Analyzer) FormatReportBinary(report analyze.Report, w io.Writer) error {
	err := reportutil.EncodeBinaryEnvelope(ComputeMetrics(report), w)
	if err != nil {
		return fmt.Errorf("formatreportbinary: %w", err)
	}

	return nil
}
