package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bitdevs-tools/radar-cli/internal/adapters/driven/config/file"
	"github.com/bitdevs-tools/radar-cli/internal/adapters/driven/export"
	"github.com/bitdevs-tools/radar-cli/internal/connectors/github"
	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
	"github.com/bitdevs-tools/radar-cli/internal/core/services"
	"github.com/bitdevs-tools/radar-cli/internal/logger"
)

var (
	scanConfigPath     string
	scanExcludePath    string
	scanDetailedInput  string
	scanDetailedOutput string
	scanCategoryOutput string
	scanDomainOutput   string
	scanDateOutput     string
	scanStartDate      string
	scanThreshold      int
	scanToken          string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan repositories and write grouped reports",
	Long: `Scan the configured repositories, aggregate every extracted link into a
deduplicated ledger, and write the detailed JSON export plus the
category, domain, and month markdown reports.

With --detailed-input the scan phase is skipped and the ledger is
reconstructed from a previous JSON export instead.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanConfigPath, "config", "radar.yaml",
		"repository list file")
	scanCmd.Flags().StringVar(&scanExcludePath, "exclude", "exclude_domains.yaml",
		"excluded domain prefixes file")
	scanCmd.Flags().StringVar(&scanDetailedInput, "detailed-input", "",
		"replay a previous JSON export instead of scanning")
	scanCmd.Flags().StringVar(&scanDetailedOutput, "detailed-output", "radar_resources.json",
		"detailed JSON export path")
	scanCmd.Flags().StringVar(&scanCategoryOutput, "category-output", "radar_resources.md",
		"category view markdown path")
	scanCmd.Flags().StringVar(&scanDomainOutput, "domain-output", "radar_domains.md",
		"domain view markdown path")
	scanCmd.Flags().StringVar(&scanDateOutput, "date-output", "radar_dates.md",
		"month view markdown path")
	scanCmd.Flags().StringVar(&scanStartDate, "start-date", "",
		"ignore occurrences before this date (YYYY-MM-DD)")
	scanCmd.Flags().IntVar(&scanThreshold, "threshold", 0,
		"Other Resources bucketing threshold (0 uses settings or the default)")
	scanCmd.Flags().StringVar(&scanToken, "token", "",
		"GitHub API token (overrides settings and GITHUB_TOKEN)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	excluded, err := file.LoadExclusions(scanExcludePath)
	if err != nil {
		return fmt.Errorf("failed to load exclusions: %w", err)
	}
	exclusions := domain.NewExclusionList(excluded)

	opts := []services.LedgerOption{services.WithExclusions(exclusions)}
	var startDate time.Time
	if scanStartDate != "" {
		startDate, err = time.Parse("2006-01-02", scanStartDate)
		if err != nil {
			return fmt.Errorf("invalid --start-date %q: expected YYYY-MM-DD", scanStartDate)
		}
		opts = append(opts, services.WithStartDate(startDate))
	}
	ledger := services.NewLedger(opts...)

	if scanDetailedInput != "" {
		if err := replayInput(scanDetailedInput, ledger); err != nil {
			return err
		}
	} else {
		if err := scanRepositories(ctx, cmd, ledger); err != nil {
			return err
		}
	}

	snapshot := ledger.Snapshot()
	threshold := resolveThreshold(scanThreshold)

	meta := services.Summarize(snapshot, services.RunParams{
		RunID:               uuid.NewString(),
		StartDate:           startDate,
		ExcludedDomains:     exclusions.Entries(),
		ExcludedOccurrences: ledger.ExcludedCount(),
	})

	detailed := export.BuildDetailedView(snapshot, meta)
	if scanDetailedInput != scanDetailedOutput {
		if err := export.SaveDetailedView(scanDetailedOutput, detailed); err != nil {
			return fmt.Errorf("failed to write detailed export: %w", err)
		}
	}

	if err := writeReports(snapshot, meta, threshold); err != nil {
		return err
	}

	cmd.Printf("Aggregated %d unique resources (%d references).\n",
		meta.TotalUniqueURLs, meta.TotalReferences)
	if ledger.ExcludedCount() > 0 {
		cmd.Printf("Excluded %d references by domain filter.\n", ledger.ExcludedCount())
	}
	if ledger.TooOldCount() > 0 {
		cmd.Printf("Skipped %d references before %s.\n",
			ledger.TooOldCount(), startDate.Format("2006-01-02"))
	}
	if ledger.MalformedCount() > 0 {
		cmd.Printf("Skipped %d malformed URLs.\n", ledger.MalformedCount())
	}
	return nil
}

// replayInput reconstructs the ledger from a previous detailed export.
func replayInput(path string, ledger *services.Ledger) error {
	view, err := export.LoadDetailedView(path)
	if err != nil {
		return fmt.Errorf("failed to load detailed input: %w", err)
	}
	if err := export.Replay(view, ledger); err != nil {
		return fmt.Errorf("failed to replay %s: %w", path, err)
	}
	logger.Info("Replayed %d resources from %s", ledger.Len(), path)
	return nil
}

// scanRepositories runs the GitHub scan phase against the configured
// repository list.
func scanRepositories(ctx context.Context, cmd *cobra.Command, ledger *services.Ledger) error {
	cfg, err := file.LoadConfig(scanConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repos := make([]github.Repository, 0, len(cfg.Repositories))
	for _, rc := range cfg.Repositories {
		repos = append(repos, github.Repository{
			URL:            rc.URL,
			PostsDirectory: rc.PostsDirectory,
		})
	}

	client := github.NewClient(ctx, resolveToken())
	scanner := github.NewScanner(client)

	stats, scanErrs := scanner.ScanAll(ctx, repos, ledger)
	for _, serr := range scanErrs {
		logger.Warn("%v", serr)
	}
	if stats.ReposScanned == 0 {
		if len(scanErrs) > 0 {
			return fmt.Errorf("all %d repositories failed: %w", len(repos), errors.Join(scanErrs...))
		}
		return errors.New("no repositories scanned")
	}

	cmd.Printf("Scanned %d repositories, %d posts, %d links.\n",
		stats.ReposScanned, stats.PostsScanned, stats.LinksFound)
	return nil
}

// writeReports renders the three grouped markdown views.
func writeReports(snapshot map[string]*domain.Resource, meta services.RunMetadata, threshold int) error {
	categories := services.BuildCategoryView(snapshot, threshold)
	if err := export.WriteMarkdownFile(scanCategoryOutput, func(w io.Writer) {
		export.RenderCategoryView(w, categories, meta)
	}); err != nil {
		return fmt.Errorf("failed to write category view: %w", err)
	}

	domains := services.BuildDomainView(snapshot)
	if err := export.WriteMarkdownFile(scanDomainOutput, func(w io.Writer) {
		export.RenderDomainView(w, domains, meta)
	}); err != nil {
		return fmt.Errorf("failed to write domain view: %w", err)
	}

	months := services.BuildMonthView(snapshot, threshold)
	if err := export.WriteMarkdownFile(scanDateOutput, func(w io.Writer) {
		export.RenderMonthView(w, months, meta)
	}); err != nil {
		return fmt.Errorf("failed to write month view: %w", err)
	}
	return nil
}

// resolveToken picks the GitHub token: flag, then stored settings,
// then the GITHUB_TOKEN environment variable.
func resolveToken() string {
	if scanToken != "" {
		return scanToken
	}
	if store, err := file.NewSettingsStore(""); err == nil {
		if token := store.Get().GitHubToken; token != "" {
			return token
		}
	}
	return os.Getenv("GITHUB_TOKEN")
}

// resolveThreshold picks the Other Resources threshold: flag, then
// stored settings, then the built-in default.
func resolveThreshold(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if store, err := file.NewSettingsStore(""); err == nil {
		if t := store.Get().OtherThreshold; t > 0 {
			return t
		}
	}
	return services.DefaultOtherThreshold
}
