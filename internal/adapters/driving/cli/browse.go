package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bitdevs-tools/radar-cli/internal/adapters/driven/export"
	"github.com/bitdevs-tools/radar-cli/internal/adapters/driving/tui"
	"github.com/bitdevs-tools/radar-cli/internal/core/services"
)

var browseInput string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse an export interactively",
	Long: `Launch an interactive terminal UI over a detailed JSON export.

Controls:
  ↑/k, ↓/j - Navigate resources
  /        - Filter
  Esc      - Clear filter
  q        - Quit`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseInput, "input", "radar_resources.json",
		"detailed JSON export to browse")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, _ []string) error {
	view, err := export.LoadDetailedView(browseInput)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", browseInput, err)
	}

	ledger := services.NewLedger()
	if err := export.Replay(view, ledger); err != nil {
		return fmt.Errorf("failed to replay %s: %w", browseInput, err)
	}

	snapshot := ledger.Snapshot()
	meta := services.Summarize(snapshot, services.RunParams{
		ExcludedDomains: view.Metadata.ExcludedDomains,
	})

	return tui.Run(snapshot, meta)
}
