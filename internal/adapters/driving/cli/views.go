package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/bitdevs-tools/radar-cli/internal/adapters/driven/export"
	"github.com/bitdevs-tools/radar-cli/internal/core/services"
	"github.com/bitdevs-tools/radar-cli/internal/logger"
)

var (
	viewsInput          string
	viewsCategoryOutput string
	viewsDomainOutput   string
	viewsDateOutput     string
	viewsThreshold      int
	viewsWatch          bool
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Regenerate markdown reports from a JSON export",
	Long: `Regenerate the category, domain, and month markdown reports from a
detailed JSON export, without touching the network.

With --watch the input file is monitored and the reports are
re-rendered whenever it changes.`,
	RunE: runViews,
}

func init() {
	viewsCmd.Flags().StringVar(&viewsInput, "input", "radar_resources.json",
		"detailed JSON export to render")
	viewsCmd.Flags().StringVar(&viewsCategoryOutput, "category-output", "radar_resources.md",
		"category view markdown path")
	viewsCmd.Flags().StringVar(&viewsDomainOutput, "domain-output", "radar_domains.md",
		"domain view markdown path")
	viewsCmd.Flags().StringVar(&viewsDateOutput, "date-output", "radar_dates.md",
		"month view markdown path")
	viewsCmd.Flags().IntVar(&viewsThreshold, "threshold", 0,
		"Other Resources bucketing threshold (0 uses settings or the default)")
	viewsCmd.Flags().BoolVar(&viewsWatch, "watch", false,
		"re-render whenever the input file changes")
	rootCmd.AddCommand(viewsCmd)
}

func runViews(cmd *cobra.Command, _ []string) error {
	if err := renderViews(cmd); err != nil {
		return err
	}
	if !viewsWatch {
		return nil
	}
	return watchViews(cmd)
}

// renderViews replays the input export and writes all three reports.
func renderViews(cmd *cobra.Command) error {
	view, err := export.LoadDetailedView(viewsInput)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", viewsInput, err)
	}

	ledger := services.NewLedger()
	if err := export.Replay(view, ledger); err != nil {
		return fmt.Errorf("failed to replay %s: %w", viewsInput, err)
	}

	snapshot := ledger.Snapshot()
	threshold := resolveThreshold(viewsThreshold)

	params := services.RunParams{
		ExcludedDomains: view.Metadata.ExcludedDomains,
	}
	if view.Metadata.StartDate != nil {
		if start, perr := time.Parse("2006-01-02", *view.Metadata.StartDate); perr == nil {
			params.StartDate = start
		}
	}
	meta := services.Summarize(snapshot, params)

	categories := services.BuildCategoryView(snapshot, threshold)
	if err := export.WriteMarkdownFile(viewsCategoryOutput, func(w io.Writer) {
		export.RenderCategoryView(w, categories, meta)
	}); err != nil {
		return fmt.Errorf("failed to write category view: %w", err)
	}

	domains := services.BuildDomainView(snapshot)
	if err := export.WriteMarkdownFile(viewsDomainOutput, func(w io.Writer) {
		export.RenderDomainView(w, domains, meta)
	}); err != nil {
		return fmt.Errorf("failed to write domain view: %w", err)
	}

	months := services.BuildMonthView(snapshot, threshold)
	if err := export.WriteMarkdownFile(viewsDateOutput, func(w io.Writer) {
		export.RenderMonthView(w, months, meta)
	}); err != nil {
		return fmt.Errorf("failed to write month view: %w", err)
	}

	cmd.Printf("Rendered %d resources into %s, %s, %s.\n",
		meta.TotalUniqueURLs, viewsCategoryOutput, viewsDomainOutput, viewsDateOutput)
	return nil
}

// watchViews re-renders the reports on every change to the input file
// until interrupted.
func watchViews(cmd *cobra.Command) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(viewsInput); err != nil {
		return fmt.Errorf("failed to watch %s: %w", viewsInput, err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	cmd.Printf("Watching %s for changes (Ctrl-C to stop)...\n", viewsInput)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Change detected: %s", event)
			if err := renderViews(cmd); err != nil {
				logger.Error("Re-render failed: %v", err)
			}
			// Editors often replace the file, dropping the watch
			if event.Has(fsnotify.Create) {
				_ = watcher.Add(viewsInput)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", werr)
		case <-stop:
			cmd.Println("Stopped watching.")
			return nil
		}
	}
}
