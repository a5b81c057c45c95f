package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var detectFormat string

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the player list found in the log",
	Long: `Scan the tail of the client log and print the most recent player list.

No stats are fetched. Useful to check that the log file and tail length
are right before starting the overlay.

Examples:
  # JSON output
  bwoverlay detect

  # Human-readable output, scanning more lines
  bwoverlay detect --format pretty --tail-lines 200`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVarP(&detectFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")

	registerFormatCompletion(detectCmd, "format")
}

func runDetect(cmd *cobra.Command, args []string) error {
	if !ValidFormats[detectFormat] {
		return fmt.Errorf("invalid format %q: must be one of: %s", detectFormat, formatNames())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	agg, _, err := newAggregator(cfg, newLogger(os.Stderr))
	if err != nil {
		return err
	}

	roster, err := agg.Detect()
	if err != nil {
		return err
	}
	if roster.Empty() {
		fmt.Fprintln(os.Stderr, "No valid player list found in logs.")
		return nil
	}

	if err := OutputRoster(detectFormat, roster, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	return nil
}
