package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/renderer"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/complexity"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/halstead"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/maintain"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/rawmetrics"
	"github.com/Sumatoshi-tech/codegauge/pkg/config"
	"github.com/Sumatoshi-tech/codegauge/pkg/frontend"
	"github.com/Sumatoshi-tech/codegauge/pkg/pipeline"
)

// analysisOptions holds the static analysis knobs shared by run and watch,
// resolved from flags layered over the config file.
type analysisOptions struct {
	format           string
	analyzerIDs      []string
	excludes         []string
	ignoreDirs       []string
	includeNotebooks bool
	workers          int
	verbose          bool
	noColor          bool
}

// RunCommand holds configuration for the one-shot analysis command.
type RunCommand struct {
	opts analysisOptions
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	rc := &RunCommand{}

	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Analyze a folder of Python sources",
		Long:  "Run the selected static analyzers over a folder and print the report.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  rc.run,
	}

	registerAnalysisFlags(cmd, &rc.opts)

	return cmd
}

func registerAnalysisFlags(cmd *cobra.Command, opts *analysisOptions) {
	cmd.Flags().StringSliceVarP(&opts.analyzerIDs, "analyzers", "a", nil,
		"Analyzer IDs or globs (e.g. static/complexity, 'static/*'; empty = all)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: text, compact, json, yaml, plot, bin")
	cmd.Flags().StringSliceVar(&opts.excludes, "exclude", nil, "Glob patterns for paths to skip (e.g. 'vendor/**')")
	cmd.Flags().StringSliceVar(&opts.ignoreDirs, "ignore", nil, "Directory names to skip during discovery")
	cmd.Flags().BoolVar(&opts.includeNotebooks, "include-notebooks", false, "Analyze code cells of .ipynb notebooks")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = use CPU count)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show full report details")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	registerAnalyzerOptionFlags(cmd)
}

// registerAnalyzerOptionFlags registers every analyzer option descriptor as a
// cobra flag, deduplicated across analyzers that share an option.
func registerAnalyzerOptionFlags(cmd *cobra.Command) {
	registered := make(map[string]bool)

	for _, analyzer := range defaultStaticAnalyzers() {
		for _, opt := range analyzer.ListConfigurationOptions() {
			if registered[opt.Flag] {
				continue
			}

			registered[opt.Flag] = true
			registerOptionFlag(cmd, opt)
		}
	}
}

func registerOptionFlag(cmd *cobra.Command, opt pipeline.ConfigurationOption) {
	switch opt.Type {
	case pipeline.BoolConfigurationOption:
		if v, ok := opt.Default.(bool); ok {
			cmd.Flags().Bool(opt.Flag, v, opt.Description)
		}
	case pipeline.IntConfigurationOption:
		if v, ok := opt.Default.(int); ok {
			cmd.Flags().Int(opt.Flag, v, opt.Description)
		}
	case pipeline.StringConfigurationOption:
		if v, ok := opt.Default.(string); ok {
			cmd.Flags().String(opt.Flag, v, opt.Description)
		}
	case pipeline.StringsConfigurationOption:
		if v, ok := opt.Default.([]string); ok {
			cmd.Flags().StringSlice(opt.Flag, v, opt.Description)
		}
	case pipeline.FloatConfigurationOption:
		if v, ok := opt.Default.(float64); ok {
			cmd.Flags().Float64(opt.Flag, v, opt.Description)
		}
	}
}

// collectAnalyzerFacts reads the registered option flags back into a facts
// map keyed by option name.
func collectAnalyzerFacts(cmd *cobra.Command, analyzers []analyze.StaticAnalyzer) map[string]any {
	facts := make(map[string]any)

	for _, analyzer := range analyzers {
		for _, opt := range analyzer.ListConfigurationOptions() {
			if _, seen := facts[opt.Name]; seen {
				continue
			}

			switch opt.Type {
			case pipeline.BoolConfigurationOption:
				if v, err := cmd.Flags().GetBool(opt.Flag); err == nil {
					facts[opt.Name] = v
				}
			case pipeline.IntConfigurationOption:
				if v, err := cmd.Flags().GetInt(opt.Flag); err == nil {
					facts[opt.Name] = v
				}
			case pipeline.StringConfigurationOption:
				if v, err := cmd.Flags().GetString(opt.Flag); err == nil {
					facts[opt.Name] = v
				}
			case pipeline.StringsConfigurationOption:
				if v, err := cmd.Flags().GetStringSlice(opt.Flag); err == nil {
					facts[opt.Name] = v
				}
			case pipeline.FloatConfigurationOption:
				if v, err := cmd.Flags().GetFloat64(opt.Flag); err == nil {
					facts[opt.Name] = v
				}
			}
		}
	}

	return facts
}

// configureAnalyzers applies the collected option facts to every analyzer.
func configureAnalyzers(cmd *cobra.Command, analyzers []analyze.StaticAnalyzer) error {
	facts := collectAnalyzerFacts(cmd, analyzers)

	for _, analyzer := range analyzers {
		err := analyzer.Configure(facts)
		if err != nil {
			return fmt.Errorf("configure %s: %w", analyzer.Name(), err)
		}
	}

	return nil
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag(cmd))
	if err != nil {
		return err
	}

	applyAnalysisConfig(cmd, &rc.opts, cfg)

	format, err := analyze.ValidateFormat(rc.opts.format)
	if err != nil {
		return err
	}

	service, err := newStaticService(rc.opts, analysisLogger(cmd))
	if err != nil {
		return err
	}

	err = configureAnalyzers(cmd, service.Analyzers)
	if err != nil {
		return err
	}

	registry, err := analyze.NewRegistry(service.Analyzers)
	if err != nil {
		return err
	}

	ids, err := registry.SelectedIDs(rc.opts.analyzerIDs)
	if err != nil {
		return err
	}

	return service.RunAndFormat(cmd.Context(), resolvePath(args), ids, format, rc.opts.verbose, rc.opts.noColor, cmd.OutOrStdout())
}

// applyAnalysisConfig fills options the user did not set on the command line
// from the loaded config file.
func applyAnalysisConfig(cmd *cobra.Command, opts *analysisOptions, cfg *config.Config) {
	if opts.format == "" {
		opts.format = cfg.Analysis.Format
	}

	if !cmd.Flags().Changed("analyzers") && len(cfg.Analysis.Analyzers) > 0 {
		opts.analyzerIDs = cfg.Analysis.Analyzers
	}

	if !cmd.Flags().Changed("exclude") {
		opts.excludes = cfg.Analysis.Exclude
	}

	if !cmd.Flags().Changed("ignore") {
		opts.ignoreDirs = cfg.Analysis.Ignore
	}

	if !cmd.Flags().Changed("include-notebooks") {
		opts.includeNotebooks = cfg.Analysis.IncludeNotebooks
	}

	if !cmd.Flags().Changed("workers") {
		opts.workers = cfg.Analysis.Workers
	}
}

func defaultStaticAnalyzers() []analyze.StaticAnalyzer {
	return []analyze.StaticAnalyzer{
		complexity.NewAnalyzer(),
		halstead.NewAnalyzer(),
		rawmetrics.NewAnalyzer(),
		maintain.NewAnalyzer(),
	}
}

func newStaticService(opts analysisOptions, logger *slog.Logger) (*analyze.StaticService, error) {
	service := analyze.NewStaticService(defaultStaticAnalyzers(), frontend.NewParser())
	service.Renderer = renderer.NewDefaultStaticRenderer()
	service.Logger = logger
	service.Workers = opts.workers
	service.Excludes = opts.excludes
	service.IgnoreDirs = opts.ignoreDirs
	service.IncludeNotebooks = opts.includeNotebooks

	if opts.includeNotebooks {
		extractor, err := frontend.NewNotebookExtractor()
		if err != nil {
			return nil, err
		}

		service.Notebooks = extractor
	}

	return service, nil
}

func analysisLogger(cmd *cobra.Command) *slog.Logger {
	if isQuiet(cmd) {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func resolvePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return "."
}
