// Package analyze defines the analyzer contracts and the services that run
// static metric analyzers over parsed source units.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/codegauge/pkg/pipeline"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

// Report is a map of string keys to arbitrary values representing analysis output.
type Report = map[string]any

// Thresholds represents color-coded thresholds for multiple metrics.
// Structure: {"metric_name": {"red": value, "yellow": value, "green": value}}.
type Thresholds = map[string]map[string]any

// ErrUnknownAnalyzer is returned when an analyzer name cannot be resolved.
var ErrUnknownAnalyzer = errors.New("unknown analyzer")

// ErrNilUnit is returned when analysis is attempted without a parsed unit.
var ErrNilUnit = errors.New("analysis unit is nil")

// Analyzer is the common base interface for all analyzers.
type Analyzer interface {
	Name() string
	Flag() string
	Description() string
	Descriptor() Descriptor

	// Configuration.
	ListConfigurationOptions() []pipeline.ConfigurationOption
	Configure(facts map[string]any) error
}

// StaticAnalyzer is the contract for per-unit metric analyzers. Analyze
// receives one parsed unit (syntax tree plus token stream) and returns the
// per-file report; aggregators fold per-file reports into folder totals.
type StaticAnalyzer interface { //nolint:interfacebloat // the universal format contract needs every method.
	Analyzer

	Analyze(unit *syntax.Unit) (Report, error)
	Thresholds() Thresholds

	CreateAggregator() ResultAggregator

	FormatReport(report Report, writer io.Writer) error
	FormatReportJSON(report Report, writer io.Writer) error
	FormatReportYAML(report Report, writer io.Writer) error
	FormatReportPlot(report Report, writer io.Writer) error
	FormatReportBinary(report Report, writer io.Writer) error
}

// VisitorProvider enables single-pass traversal: analyzers implementing it
// share one walk of the syntax tree instead of traversing independently.
type VisitorProvider interface {
	CreateVisitor(unit *syntax.Unit) AnalysisVisitor
}

// ResultAggregator folds per-file reports into a folder-level result.
type ResultAggregator interface {
	Aggregate(results map[string]Report)
	GetResult() Report
}

// Factory resolves analyzer names and runs them against one unit.
type Factory struct {
	analyzers map[string]StaticAnalyzer
}

// NewFactory creates a factory over the given analyzers.
func NewFactory(analyzers []StaticAnalyzer) *Factory {
	factory := &Factory{analyzers: make(map[string]StaticAnalyzer, len(analyzers))}

	for _, analyzer := range analyzers {
		factory.analyzers[analyzer.Name()] = analyzer
	}

	return factory
}

// RunAnalyzers runs the named analyzers on one unit. Tree-visiting analyzers
// share a single traversal; the rest receive the unit directly. A unit is
// always processed synchronously: cross-file parallelism belongs to the
// caller, never to per-unit analysis.
func (f *Factory) RunAnalyzers(ctx context.Context, unit *syntax.Unit, analyzers []string) (map[string]Report, error) {
	if unit == nil || unit.Tree == nil {
		return nil, ErrNilUnit
	}

	visitors := make(map[string]AnalysisVisitor)
	direct := make([]StaticAnalyzer, 0, len(analyzers))
	traverser := NewMultiTraverser()

	for _, name := range analyzers {
		analyzer, ok := f.analyzers[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAnalyzer, name)
		}

		if provider, isProvider := analyzer.(VisitorProvider); isProvider {
			visitor := provider.CreateVisitor(unit)
			visitors[name] = visitor

			traverser.Register(visitor)

			continue
		}

		direct = append(direct, analyzer)
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("run analyzers: %w", ctx.Err())
	}

	combined := make(map[string]Report, len(analyzers))

	if len(visitors) > 0 {
		traverser.Traverse(unit.Tree)

		for name, visitor := range visitors {
			combined[name] = visitor.GetReport()
		}
	}

	for _, analyzer := range direct {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("run analyzers: %w", ctx.Err())
		}

		report, err := analyzer.Analyze(unit)
		if err != nil {
			return nil, fmt.Errorf("analyzer %s: %w", analyzer.Name(), err)
		}

		combined[analyzer.Name()] = report
	}

	return combined, nil
}
