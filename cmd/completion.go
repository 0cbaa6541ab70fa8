package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Shell-Completion generieren",
	Long: `Generiert Shell-Completion-Scripts für errornet.

Bash:
  $ source <(errornet completion bash)
  # Oder permanent in ~/.bashrc:
  $ errornet completion bash >> ~/.bashrc

Zsh:
  $ source <(errornet completion zsh)
  # Oder permanent:
  $ errornet completion zsh > "${fpath[1]}/_errornet"

Fish:
  $ errornet completion fish | source
  # Oder permanent:
  $ errornet completion fish > ~/.config/fish/completions/errornet.fish

PowerShell:
  PS> errornet completion powershell | Out-String | Invoke-Expression
  # Oder permanent in $PROFILE:
  PS> errornet completion powershell >> $PROFILE
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	// Kein Reporter-Banner im generierten Script
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
