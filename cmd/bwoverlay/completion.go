package main

import (
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for bwoverlay.

To load completions:

Bash:
  $ source <(bwoverlay completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ bwoverlay completion bash > /etc/bash_completion.d/bwoverlay
  # macOS:
  $ bwoverlay completion bash > $(brew --prefix)/etc/bash_completion.d/bwoverlay

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ bwoverlay completion zsh > "${fpath[1]}/_bwoverlay"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ bwoverlay completion fish | source

  # To load completions for each session, execute once:
  $ bwoverlay completion fish > ~/.config/fish/completions/bwoverlay.fish

PowerShell:
  PS> bwoverlay completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> bwoverlay completion powershell > bwoverlay.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Usage()
		}

		root := cmd.Root()
		out := cmd.OutOrStdout()

		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completeValues returns a completion function offering the candidates that
// start with the typed prefix, case-insensitively.
func completeValues(candidates func() []string) func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		current := strings.ToLower(strings.TrimSpace(toComplete))

		var out []string
		for _, c := range candidates() {
			if strings.HasPrefix(c, current) {
				out = append(out, c)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

func sortedFormats() []string {
	names := lo.Keys(ValidFormats)
	slices.Sort(names)
	return names
}

// registerRefreshModeCompletion registers completion for a refresh mode flag.
func registerRefreshModeCompletion(cmd *cobra.Command, flagName string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeValues(ValidRefreshModeNames))
}

// registerFormatCompletion registers completion for an output format flag.
func registerFormatCompletion(cmd *cobra.Command, flagName string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeValues(sortedFormats))
}
