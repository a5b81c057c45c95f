package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by ldflags)
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	verbose    bool
	configPath string
	logFile    string
	tailLines  int
	logOutput  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bwoverlay",
	Short: "Bedwars lobby stats overlay",
	Long: `bwoverlay shows Bedwars stats for the players in your current lobby.

It reads the tail of the Minecraft client log, finds the most recent
comma-separated player list in chat, fetches each player's leaderboard
stats and shows them as a table in the terminal.

Examples:
  # Show the overlay, refresh with the \ key
  bwoverlay

  # Refresh every 20 seconds
  bwoverlay --refresh interval --interval 20s

  # Refresh whenever a new player list appears in the log
  bwoverlay --refresh watch

  # Use a specific log file
  bwoverlay --log-file ~/.minecraft/logs/latest.log`,
	SilenceUsage: true, // Don't show usage on error
	Args:         cobra.NoArgs,
	RunE:         runOverlay,
}

func init() {
	// Global flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file (default ./bwoverlay.yaml, then ~/.config/bwoverlay/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "l", "",
		"Minecraft client log file (auto-detected if not specified)")
	rootCmd.PersistentFlags().IntVarP(&tailLines, "tail-lines", "n", 0,
		"Number of log lines to scan (default from config, 40)")
	rootCmd.PersistentFlags().StringVar(&logOutput, "log-output", "",
		"Write diagnostics to this file while the overlay is shown")

	// Add subcommands
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bwoverlay %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
