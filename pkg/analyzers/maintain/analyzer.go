package maintain

import (
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/renderer"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/terminal"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/complexity"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/halstead"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/rawmetrics"
	"github.com/Sumatoshi-tech/codegauge/pkg/pipeline"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

// Option names.
const (
	// OptionMulti toggles docstring lines counting toward the comment percentage.
	OptionMulti = "multi"

	// OptionSort selects the ordering of the aggregated file listing.
	OptionSort = "sort"
)

const percentScale = 100.0

// Analyzer scores files on the Maintainability Index scale.
type Analyzer struct {
	multiAsComments bool
	sortKey         SortKey
}

// NewAnalyzer creates a maintainability Analyzer with docstring treatment on.
func NewAnalyzer() *Analyzer {
	return &Analyzer{multiAsComments: true, sortKey: SortByScore}
}

// Name returns the analyzer name.
func (m *Analyzer) Name() string {
	return "maintainability"
}

// Flag returns the CLI flag for the analyzer.
func (m *Analyzer) Flag() string {
	return "mi"
}

// Description returns the analyzer description.
func (m *Analyzer) Description() string {
	return m.Descriptor().Description
}

// Descriptor returns stable analyzer metadata.
func (m *Analyzer) Descriptor() analyze.Descriptor {
	return analyze.NewDescriptor(
		analyze.ModeStatic,
		m.Name(),
		"Scores files 0-100 on the Maintainability Index from volume, complexity, and line counts.",
	)
}

// ListConfigurationOptions returns the configuration options for the analyzer.
func (m *Analyzer) ListConfigurationOptions() []pipeline.ConfigurationOption {
	return []pipeline.ConfigurationOption{
		{
			Name:        OptionMulti,
			Description: "Count standalone multi-line strings (docstrings) toward the comment percentage.",
			Flag:        OptionMulti,
			Type:        pipeline.BoolConfigurationOption,
			Default:     true,
		},
		{
			Name:        OptionSort,
			Description: "Order aggregated files by: score, lines, or name.",
			Flag:        OptionSort,
			Type:        pipeline.StringConfigurationOption,
			Default:     string(SortByScore),
		},
	}
}

// Configure applies option facts to the analyzer. An unrecognized sort key
// falls back to score ordering, matching SortEntries.
func (m *Analyzer) Configure(facts map[string]any) error {
	if v, ok := facts[OptionMulti].(bool); ok {
		m.multiAsComments = v
	}

	if v, ok := facts[OptionSort].(string); ok {
		m.sortKey = SortKey(v)
	}

	return nil
}

// Thresholds returns the color-coded thresholds for the index.
func (m *Analyzer) Thresholds() analyze.Thresholds {
	return analyze.Thresholds{
		"mi": {
			"green":  miMax,
			"yellow": rankAMin,
			"red":    rankBMin,
		},
	}
}

// Analyze scores one unit. It needs both the syntax tree and the token
// stream, so it always runs on the direct path rather than a shared
// traversal.
func (m *Analyzer) Analyze(unit *syntax.Unit) (analyze.Report, error) {
	if unit == nil || unit.Tree == nil {
		return nil, analyze.ErrNilUnit
	}

	if unit.Tokens == nil {
		return nil, rawmetrics.ErrNoTokens
	}

	blocks, _ := complexity.AnalyzeTree(unit.Tree, complexity.Options{})
	avgComplexity, _ := complexity.AverageComplexity(blocks)

	_, fileMetrics := halstead.AnalyzeTree(unit.Tree)

	counts := rawmetrics.Classify(unit.Tokens, rawmetrics.Options{MultiAsComments: m.multiAsComments})

	percentComment := commentPercent(counts, m.multiAsComments)
	mi := Index(fileMetrics.Volume, avgComplexity, counts.Code, percentComment)

	return buildReport(unit.Path, mi, fileMetrics.Volume, avgComplexity, counts.Code, percentComment), nil
}

// CreateAggregator returns a new aggregator for maintainability analysis,
// listing files in the configured sort order.
func (m *Analyzer) CreateAggregator() analyze.ResultAggregator {
	return NewSortedAggregator(m.sortKey)
}

// commentPercent computes the comment share of source lines, as a
// percentage. Docstring lines count only when the multi option is on.
func commentPercent(counts rawmetrics.Counts, multiAsComments bool) float64 {
	if counts.Code == 0 {
		return 0
	}

	commentLines := counts.Comments
	if multiAsComments {
		commentLines += counts.Multi
	}

	return percentScale * float64(commentLines) / float64(counts.Code)
}

// buildReport assembles the per-file report.
func buildReport(path string, mi, volume, avgComplexity float64, sloc int, percentComment float64) analyze.Report {
	rank := RankOf(mi)

	return analyze.Report{
		"analyzer_name":   "maintainability",
		"file":            path,
		"mi":              mi,
		"rank":            rank,
		"volume":          volume,
		"avg_complexity":  avgComplexity,
		"sloc":            sloc,
		"comment_percent": percentComment,
		"message":         buildMaintainMessage(rank),
	}
}

// buildMaintainMessage summarizes the rank tier.
func buildMaintainMessage(rank string) string {
	switch rank {
	case "A":
		return "Highly maintainable - no action needed"
	case "B":
		return "Moderately maintainable - watch for growing complexity"
	default:
		return "Low maintainability - refactoring recommended"
	}
}

// FormatReport formats maintainability results as human-readable text.
func (m *Analyzer) FormatReport(report analyze.Report, w io.Writer) error {
	section := NewReportSection(report)
	config := terminal.NewConfig()
	r := renderer.NewSectionRenderer(config.Width, false, config.NoColor)

	_, err := fmt.Fprint(w, r.Render(section))
	if err != nil {
		return fmt.Errorf("formatreport: %w", err)
	}

	listing := fileListing(report, config.NoColor)
	if listing != "" {
		_, err = fmt.Fprintf(w, "\n%s\n", listing)
		if err != nil {
			return fmt.Errorf("formatreport: %w", err)
		}
	}

	return nil
}

// fileListing renders the per-file table of an aggregated report in the
// order the aggregator produced, so the configured sort key carries through.
func fileListing(report analyze.Report, noColor bool) string {
	files := reportutil.GetBlocks(report, "files")
	if len(files) == 0 {
		return ""
	}

	rows := make([]common.FileRow, 0, len(files))
	for _, file := range files {
		rows = append(rows, common.FileRow{
			Name:  reportutil.MapString(file, "file"),
			Lines: reportutil.MapInt(file, "sloc"),
			Value: reportutil.FormatFloat(reportutil.MapFloat64(file, "mi")),
			Rank:  reportutil.MapString(file, "rank"),
		})
	}

	formatter := common.NewFormatter(common.FormatConfig{NoColor: noColor})

	return formatter.FormatFileTable("MI", rows)
}

// FormatReportJSON formats maintainability results as JSON.
func (m *Analyzer) FormatReportJSON(report analyze.Report, w io.Writer) error {
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

// FormatReportYAML formats maintainability results as YAML.
func (m *Analyzer) FormatReportYAML(report analyze.Report, w io.Writer) error {
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

// FormatReportBinary formats maintainability results as a binary envelope.
func (m *Analyzer) FormatReportBinary(report analyze.Report, w io.Writer) error {
	err := reportutil.EncodeBinaryEnvelope(ComputeMetrics(report), w)
	if err != nil {
		return fmt.Errorf("formatreportbinary: %w", err)
	}

	return nil
}
