package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints shell completion scripts. Besides subcommands
// and flags they complete theme ids and speech languages.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Print a shell completion script",
		Long: `Print a completion script for your shell to stdout.

Completions cover subcommands, flags, theme ids (--theme) and speech
languages (--lang).

Try it in the current shell:
  source <(uhrzeit completion bash)
  uhrzeit completion fish | source

Install it permanently by writing the script where your shell looks for
completions, e.g. ~/.config/fish/completions/uhrzeit.fish or a directory
on zsh's $fpath as _uhrzeit.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Completion scripts do not need the configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
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
	return cmd
}
