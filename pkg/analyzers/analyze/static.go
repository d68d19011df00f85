package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

// ErrRendererNotSet is returned when a formatting method is called without a Renderer.
var ErrRendererNotSet = errors.New("static service renderer not set")

// ErrInvalidExcludePattern is returned for malformed --exclude globs.
var ErrInvalidExcludePattern = errors.New("invalid exclude pattern")

// pythonExtension is the file extension analyzed by default.
const pythonExtension = ".py"

// notebookExtension marks Jupyter notebooks for optional cell extraction.
const notebookExtension = ".ipynb"

// pythonLanguage is the enry language name used for content detection.
const pythonLanguage = "Python"

// UnitParser turns file content into an analysis unit. The production
// implementation lives in pkg/frontend; tests substitute hand-built units.
type UnitParser interface {
	Parse(ctx context.Context, path string, content []byte) (*syntax.Unit, error)
}

// NotebookExtractor pulls concatenated code-cell source out of a notebook.
type NotebookExtractor interface {
	ExtractSource(content []byte) ([]byte, error)
}

// StaticRenderer abstracts section-based rendering to avoid import cycles
// between the analyze and renderer packages. The renderer package provides
// the production implementation.
type StaticRenderer interface {
	// SectionsToJSON converts report sections to a JSON-serializable value.
	SectionsToJSON(sections []ReportSection) any

	// RenderText writes human-readable text output for the given sections.
	RenderText(sections []ReportSection, verbose, noColor bool, writer io.Writer) error

	// RenderCompact writes single-line-per-section compact output.
	RenderCompact(sections []ReportSection, noColor bool, writer io.Writer) error
}

// StaticService runs static analyzers over folder trees and renders results.
type StaticService struct {
	Analyzers []StaticAnalyzer

	// Parser builds analysis units from file content. Required for folder analysis.
	Parser UnitParser

	// Notebooks extracts code cells from .ipynb files when IncludeNotebooks is set.
	Notebooks NotebookExtractor

	// Renderer provides section-based output rendering.
	// Must be set before calling FormatJSON, FormatText, FormatCompact, or RunAndFormat.
	Renderer StaticRenderer

	// Logger receives per-unit skip warnings. Nil uses slog default.
	Logger *slog.Logger

	// Workers bounds cross-file parallelism. Zero or negative means NumCPU.
	Workers int

	// Excludes are glob patterns matched against slash-separated relative paths.
	Excludes []string

	// IgnoreDirs are directory base names skipped during the walk.
	IgnoreDirs []string

	// IncludeNotebooks enables .ipynb ingestion.
	IncludeNotebooks bool
}

// NewStaticService creates a StaticService with the given analyzers and parser.
func NewStaticService(analyzers []StaticAnalyzer, parser UnitParser) *StaticService {
	return &StaticService{Analyzers: analyzers, Parser: parser}
}

// AnalyzeFolder runs the named analyzers for every supported file under
// rootPath. Files are independent units: they are parsed and analyzed in
// parallel, and a unit that fails to parse is logged and skipped without
// touching any other unit's report.
func (svc *StaticService) AnalyzeFolder(ctx context.Context, rootPath string, analyzerList []string) (map[string]Report, error) {
	analyzersToRun := svc.resolveAnalyzerList(analyzerList)
	aggregators := svc.initAggregators(analyzersToRun)

	paths, err := svc.collectPaths(rootPath)
	if err != nil {
		return nil, err
	}

	workers := svc.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		wg    sync.WaitGroup
		aggMu sync.Mutex
	)

	sem := make(chan struct{}, workers)

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)

		go func() {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			reportMap, unitErr := svc.analyzeFile(ctx, path, analyzersToRun)
			if unitErr != nil {
				svc.logger().Warn("skipping unit", "path", path, "error", unitErr)

				return
			}

			aggMu.Lock()
			aggregateFolderAnalysis(reportMap, aggregators)
			aggMu.Unlock()
		}()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return nil, fmt.Errorf("analyze folder %s: %w", rootPath, ctx.Err())
	}

	return buildFinalResults(aggregators), nil
}

// collectPaths walks the tree and returns the analyzable file paths in walk order.
func (svc *StaticService) collectPaths(rootPath string) ([]string, error) {
	excludes, err := compileExcludes(svc.Excludes)
	if err != nil {
		return nil, err
	}

	var paths []string

	walkErr := filepath.WalkDir(rootPath, func(path string, entry os.DirEntry, entryErr error) error {
		skip, decisionErr := svc.shouldSkip(rootPath, path, entry, entryErr, excludes)
		if skip || decisionErr != nil {
			return decisionErr
		}

		paths = append(paths, path)

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", rootPath, walkErr)
	}

	return paths, nil
}

// shouldSkip decides whether a walk entry is excluded from analysis.
// Permission and vanished-file errors are tolerated; the walk continues.
func (svc *StaticService) shouldSkip(
	rootPath, path string,
	entry os.DirEntry,
	entryErr error,
	excludes []glob.Glob,
) (bool, error) {
	if entryErr != nil {
		if errors.Is(entryErr, fs.ErrPermission) || errors.Is(entryErr, fs.ErrNotExist) {
			if entry != nil && entry.IsDir() {
				return true, filepath.SkipDir
			}

			return true, nil
		}

		return false, entryErr
	}

	if entry == nil {
		return true, nil
	}

	rel := relSlashPath(rootPath, path)

	if entry.IsDir() {
		name := entry.Name()
		if path != rootPath && (name == ".git" || strings.HasPrefix(name, ".") || svc.isIgnoredDir(name)) {
			return true, filepath.SkipDir
		}

		if matchesAny(excludes, rel) {
			return true, filepath.SkipDir
		}

		return true, nil
	}

	if matchesAny(excludes, rel) {
		return true, nil
	}

	return !svc.isSupported(path), nil
}

// isSupported reports whether the file should be analyzed: Python sources by
// extension, notebooks when enabled, and extensionless files whose content
// enry detects as Python (shebang scripts).
func (svc *StaticService) isSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case pythonExtension:
		return true
	case notebookExtension:
		return svc.IncludeNotebooks && svc.Notebooks != nil
	case "":
		return svc.detectPython(path)
	default:
		return false
	}
}

// detectSampleSize bounds how much of an extensionless file content detection reads.
const detectSampleSize = 8 << 10

func (svc *StaticService) detectPython(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	sample := make([]byte, detectSampleSize)

	n, err := file.Read(sample)
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}

	lang := enry.GetLanguage(filepath.Base(path), sample[:n])

	return lang == pythonLanguage
}

func (svc *StaticService) isIgnoredDir(name string) bool {
	for _, ignored := range svc.IgnoreDirs {
		if name == ignored {
			return true
		}
	}

	return false
}

func (svc *StaticService) analyzeFile(ctx context.Context, path string, analyzersToRun []string) (map[string]Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), notebookExtension) {
		content, err = svc.Notebooks.ExtractSource(content)
		if err != nil {
			return nil, fmt.Errorf("extract notebook %s: %w", path, err)
		}
	}

	unit, err := svc.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	factory := NewFactory(svc.Analyzers)

	results, err := factory.RunAnalyzers(ctx, unit, analyzersToRun)
	if err != nil {
		return nil, fmt.Errorf("run analyzers for %s: %w", path, err)
	}

	return results, nil
}

func (svc *StaticService) logger() *slog.Logger {
	if svc.Logger != nil {
		return svc.Logger
	}

	return slog.Default()
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidExcludePattern, pattern)
		}

		compiled = append(compiled, g)
	}

	return compiled, nil
}

func matchesAny(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}

	return false
}

func relSlashPath(rootPath, path string) string {
	rel, err := filepath.Rel(rootPath, path)
	if err != nil {
		rel = path
	}

	return filepath.ToSlash(rel)
}

func aggregateFolderAnalysis(results map[string]Report, aggregators map[string]ResultAggregator) {
	for analyzerName, aggregator := range aggregators {
		report, found := results[analyzerName]
		if !found {
			continue
		}

		aggregator.Aggregate(map[string]Report{analyzerName: report})
	}
}

func (svc *StaticService) resolveAnalyzerList(analyzerList []string) []string {
	if len(analyzerList) > 0 {
		return analyzerList
	}

	names := make([]string, 0, len(svc.Analyzers))

	for _, analyzer := range svc.Analyzers {
		names = append(names, analyzer.Name())
	}

	return names
}

func (svc *StaticService) initAggregators(analyzersToRun []string) map[string]ResultAggregator {
	aggregators := make(map[string]ResultAggregator)

	for _, analyzerName := range analyzersToRun {
		analyzer := svc.FindAnalyzer(analyzerName)
		if analyzer != nil {
			aggregators[analyzerName] = analyzer.CreateAggregator()
		}
	}

	return aggregators
}

func buildFinalResults(aggregators map[string]ResultAggregator) map[string]Report {
	allResults := make(map[string]Report)

	for analyzerName, aggregator := range aggregators {
		allResults[analyzerName] = aggregator.GetResult()
	}

	return allResults
}

// BuildSections creates ReportSection instances from results in deterministic order.
func (svc *StaticService) BuildSections(results map[string]Report) []ReportSection {
	sections := make([]ReportSection, 0, len(results))

	for _, currentAnalyzer := range svc.Analyzers {
		report, found := results[currentAnalyzer.Name()]
		if !found {
			continue
		}

		if provider, isProvider := currentAnalyzer.(ReportSectionProvider); isProvider {
			sections = append(sections, provider.CreateReportSection(report))
		}
	}

	return sections
}

// FindAnalyzer finds an analyzer by name.
func (svc *StaticService) FindAnalyzer(name string) StaticAnalyzer {
	for _, analyzer := range svc.Analyzers {
		if analyzer.Name() == name {
			return analyzer
		}
	}

	return nil
}

// AnalyzerNamesByID resolves analyzer descriptor IDs to internal names.
func (svc *StaticService) AnalyzerNamesByID(ids []string) ([]string, error) {
	idToName := make(map[string]string, len(svc.Analyzers))
	for _, analyzer := range svc.Analyzers {
		idToName[analyzer.Descriptor().ID] = analyzer.Name()
	}

	names := make([]string, 0, len(ids))

	for _, id := range ids {
		name, ok := idToName[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAnalyzerID, id)
		}

		names = append(names, name)
	}

	return names, nil
}

// FormatJSON encodes analysis results as indented JSON.
func (svc *StaticService) FormatJSON(results map[string]Report, writer io.Writer) error {
	if svc.Renderer == nil {
		return ErrRendererNotSet
	}

	sections := svc.BuildSections(results)
	report := svc.Renderer.SectionsToJSON(sections)

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(report)
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

// FormatText renders analysis results as human-readable text.
func (svc *StaticService) FormatText(results map[string]Report, verbose, noColor bool, writer io.Writer) error {
	if svc.Renderer == nil {
		return ErrRendererNotSet
	}

	return svc.Renderer.RenderText(svc.BuildSections(results), verbose, noColor, writer)
}

// FormatCompact renders analysis results as single-line-per-analyzer output.
func (svc *StaticService) FormatCompact(results map[string]Report, noColor bool, writer io.Writer) error {
	if svc.Renderer == nil {
		return ErrRendererNotSet
	}

	return svc.Renderer.RenderCompact(svc.BuildSections(results), noColor, writer)
}

// FormatPerAnalyzer renders results using per-analyzer formatters (YAML, plot, or binary).
func (svc *StaticService) FormatPerAnalyzer(
	analyzerNames []string,
	results map[string]Report,
	format string,
	writer io.Writer,
) error {
	isFirst := true

	for _, analyzerName := range analyzerNames {
		report, ok := results[analyzerName]
		if !ok {
			continue
		}

		analyzer := svc.FindAnalyzer(analyzerName)
		if analyzer == nil {
			return fmt.Errorf("%w: %s", ErrUnknownAnalyzerID, analyzerName)
		}

		if !isFirst && format != FormatBinary {
			_, _ = fmt.Fprintln(writer)
		}

		var err error

		switch format {
		case FormatYAML:
			err = analyzer.FormatReportYAML(report, writer)
		case FormatPlot:
			err = analyzer.FormatReportPlot(report, writer)
		case FormatBinary:
			err = analyzer.FormatReportBinary(report, writer)
		default:
			err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
		}

		if err != nil {
			return fmt.Errorf("format static analyzer %s: %w", analyzerName, err)
		}

		isFirst = false
	}

	return nil
}

// RunAndFormat resolves analyzer IDs, runs analysis on the given path, and formats the output.
func (svc *StaticService) RunAndFormat(
	ctx context.Context,
	path string,
	analyzerIDs []string,
	format string,
	verbose, noColor bool,
	writer io.Writer,
) error {
	analyzerNames, err := svc.AnalyzerNamesByID(analyzerIDs)
	if err != nil {
		return err
	}

	results, err := svc.AnalyzeFolder(ctx, path, analyzerNames)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return svc.FormatJSON(results, writer)
	case FormatCompact:
		return svc.FormatCompact(results, noColor, writer)
	case FormatYAML, FormatPlot, FormatBinary:
		return svc.FormatPerAnalyzer(analyzerNames, results, format, writer)
	case FormatText:
		return svc.FormatText(results, verbose, noColor, writer)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
