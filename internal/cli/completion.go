package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionShells are the shells cobra can generate completions for.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command. Scripts are written to
// the command's output so they can be piped or redirected.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate a shell completion script",
		Long: `Print a completion script for bash, zsh, fish or powershell.

Completions cover subcommands and flags, including the values accepted by
--format and --invalid.`,
		Example: `  source <(scatterplot completion bash)
  scatterplot completion zsh > "${fpath[1]}/_scatterplot"
  scatterplot completion fish > ~/.config/fish/completions/scatterplot.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}
