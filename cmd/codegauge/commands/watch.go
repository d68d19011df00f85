package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/config"
)

// WatchCommand re-runs the static analyzers whenever Python sources under
// the watched tree change.
type WatchCommand struct {
	opts     analysisOptions
	debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	wc := &WatchCommand{}

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-run analysis when Python files change",
		Long: "Watch a folder tree and re-run the selected static analyzers after " +
			"every burst of changes to Python sources.",
		Args: cobra.MaximumNArgs(1),
		RunE: wc.run,
	}

	registerAnalysisFlags(cmd, &wc.opts)
	cmd.Flags().DurationVar(&wc.debounce, "debounce", 0, "Delay before re-running after a change burst (default from config)")

	return cmd
}

func (wc *WatchCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag(cmd))
	if err != nil {
		return err
	}

	applyAnalysisConfig(cmd, &wc.opts, cfg)

	if !cmd.Flags().Changed("debounce") {
		wc.debounce = cfg.Watch.Debounce
	}

	format, err := analyze.ValidateFormat(wc.opts.format)
	if err != nil {
		return err
	}

	logger := analysisLogger(cmd)

	service, err := newStaticService(wc.opts, logger)
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

	ids, err := registry.SelectedIDs(wc.opts.analyzerIDs)
	if err != nil {
		return err
	}

	rootPath := resolvePath(args)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	err = wc.watchTree(watcher, rootPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		runErr := service.RunAndFormat(ctx, rootPath, ids, format, wc.opts.verbose, wc.opts.noColor, cmd.OutOrStdout())
		if runErr != nil {
			logger.Warn("analysis failed", "error", runErr)
		}
	}

	runOnce()

	return wc.loop(ctx, watcher, runOnce)
}

// loop debounces watcher events and re-runs analysis after each quiet period.
func (wc *WatchCommand) loop(ctx context.Context, watcher *fsnotify.Watcher, runOnce func()) error {
	timer := time.NewTimer(wc.debounce)
	defer timer.Stop()

	stopTimer(timer)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !wc.handleEvent(watcher, event) {
				continue
			}

			stopTimer(timer)
			timer.Reset(wc.debounce)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			if watchErr != nil {
				return fmt.Errorf("watch: %w", watchErr)
			}

		case <-timer.C:
			runOnce()
		}
	}
}

// handleEvent reports whether the event should trigger a re-run. Newly
// created directories are added to the watch set as a side effect.
func (wc *WatchCommand) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Create) {
		info, statErr := os.Stat(event.Name)
		if statErr == nil && info.IsDir() {
			if !isHiddenDir(filepath.Base(event.Name)) {
				_ = wc.watchTree(watcher, event.Name)
			}

			return false
		}
	}

	if !event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
		return false
	}

	return isWatchedSource(event.Name)
}

// watchTree registers root and every non-hidden directory under it.
func (wc *WatchCommand) watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // unreadable subtrees are skipped, not fatal
		}

		if !entry.IsDir() {
			return nil
		}

		if path != root && isHiddenDir(entry.Name()) {
			return filepath.SkipDir
		}

		addErr := watcher.Add(path)
		if addErr != nil {
			return fmt.Errorf("watch %s: %w", path, addErr)
		}

		return nil
	})
}

func isWatchedSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".ipynb":
		return true
	default:
		return false
	}
}

func isHiddenDir(name string) bool {
	return name == ".git" || strings.HasPrefix(name, ".")
}

func stopTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
