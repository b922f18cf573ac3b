// Package cli implements the radar command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/bitdevs-tools/radar-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "radar",
	Short: "Aggregate and group resource links from BitDevs-style repositories",
	Long: `Radar scans Jekyll-style meetup repositories on GitHub, extracts every
resource link from their posts, deduplicates them by canonical URL, and
writes grouped markdown reports plus a replayable JSON export.

Typical workflow:
  radar settings set-token      Store a GitHub API token
  radar scan                    Scan repositories and write reports
  radar views --watch           Re-render reports when the export changes
  radar browse                  Explore an export interactively`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
