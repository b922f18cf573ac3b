package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bitdevs-tools/radar-cli/internal/adapters/driven/config/file"
	"github.com/bitdevs-tools/radar-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure stored settings.

Settings live in ~/.radar/config.toml and cover the GitHub token and
the Other Resources bucketing threshold.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store a GitHub API token",
	Long: `Store a GitHub API token for authenticated scanning.

The token is read from stdin without echo and raises the API rate
limit from 60 to 5000 requests per hour.`,
	RunE: runSettingsSetToken,
}

var settingsSetThresholdCmd = &cobra.Command{
	Use:   "set-threshold [count]",
	Short: "Set the Other Resources bucketing threshold",
	Long: `Set how many resources a domain needs before it gets its own section.
Domains at or below the threshold are folded into "Other Resources".
Pass 0 to revert to the built-in default.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSetThreshold,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetTokenCmd)
	settingsCmd.AddCommand(settingsSetThresholdCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	store, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	settings := store.Get()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	if settings.GitHubToken != "" {
		cmd.Printf("  GitHub token: %s\n", maskToken(settings.GitHubToken))
	} else {
		cmd.Printf("  GitHub token: (not set)\n")
	}
	threshold := settings.OtherThreshold
	if threshold <= 0 {
		cmd.Printf("  Other threshold: %d (default)\n", services.DefaultOtherThreshold)
	} else {
		cmd.Printf("  Other threshold: %d\n", threshold)
	}
	cmd.Println()
	cmd.Printf("Settings file: %s\n", store.Path())
	return nil
}

func runSettingsSetToken(cmd *cobra.Command, _ []string) error {
	store, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}

	cmd.Print("GitHub token: ")
	token := readSecret()
	cmd.Println()
	if token == "" {
		return fmt.Errorf("no token entered")
	}

	settings := store.Get()
	settings.GitHubToken = token
	if err := store.Set(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Token saved.")
	return nil
}

func runSettingsSetThreshold(cmd *cobra.Command, args []string) error {
	threshold, err := strconv.Atoi(args[0])
	if err != nil || threshold < 0 {
		return fmt.Errorf("invalid threshold %q: expected a non-negative integer", args[0])
	}

	store, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}

	settings := store.Get()
	settings.OtherThreshold = threshold
	if err := store.Set(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if threshold == 0 {
		cmd.Printf("Threshold reset to the default (%d).\n", services.DefaultOtherThreshold)
	} else {
		cmd.Printf("Threshold set to %d.\n", threshold)
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
