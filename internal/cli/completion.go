package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// completionLong is the help text of the completion command; %[1]s is the
// binary name.
const completionLong = `Generate shell completion scripts for %[1]s.

Bash:
  $ source <(%[1]s completion bash)

  # To load completions for each session, execute once:
  $ %[1]s completion bash > /etc/bash_completion.d/%[1]s

Zsh:
  $ %[1]s completion zsh > "${fpath[1]}/_%[1]s"

Fish:
  $ %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish

PowerShell:
  PS> %[1]s completion powershell | Out-String | Invoke-Expression
`

// completionCommand creates the completion command for generating shell
// completions. Scripts are written to the command's output stream.
func (c *CLI) completionCommand() *cobra.Command {
	shells := []string{"bash", "zsh", "fish", "powershell"}
	return &cobra.Command{
		Use:                   fmt.Sprintf("completion [%s]", strings.Join(shells, "|")),
		Short:                 "Generate shell completion scripts",
		Long:                  fmt.Sprintf(completionLong, appName),
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
