package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bwoverlay/bwoverlay-go/pkg/lobby"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats NAME...",
	Short: "Fetch stats for the named players",
	Long: `Fetch leaderboard stats for each named player, in order.

Players without a profile are printed with an error field instead of
stats. A network failure stops at the failing player.

Examples:
  # JSON Lines, one player per line
  bwoverlay stats Alice Bob

  # Human-readable output
  bwoverlay stats --format pretty Alice

  # Pipe to jq
  bwoverlay stats Alice | jq '.Kills'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")

	registerFormatCompletion(statsCmd, "format")
}

func runStats(cmd *cobra.Command, args []string) error {
	if !ValidFormats[statsFormat] {
		return fmt.Errorf("invalid format %q: must be one of: %s", statsFormat, formatNames())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newStatsClient(cfg, newLogger(os.Stderr))

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, raw := range args {
		name := lobby.SanitizeName(raw)
		if name == "" {
			return fmt.Errorf("invalid player name %q", raw)
		}
		ps, err := client.Fetch(ctx, name)
		if err != nil {
			return err
		}
		if err := OutputStats(statsFormat, ps, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	return nil
}
