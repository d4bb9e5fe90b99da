// Package cli implements the uhrzeit command-line interface.
//
// The commands render clock faces, speak times, run the practice and quiz
// screens in the terminal, manage the stored progress and settings, and
// serve the HTTP API. The CLI is built using cobra and logs with the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Write a clock face as SVG
//   - say: Print and speak a time
//   - practice: Set the time by dragging the hands with the mouse
//   - quiz: Read full hours from the clock
//   - progress, settings, storage: Inspect and reset stored data
//   - serve: Run the HTTP API
//
// # Configuration
//
// The configuration file defaults to ~/.config/uhrzeit/config.toml and can
// be chosen with --config. All commands support --verbose (-v) for
// debug-level logging. Loggers are passed through context.Context.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/uhrzeit/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The configuration is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Uhrzeit teaches children to read analog clocks",
		Long: `Uhrzeit is a clock-reading game. It renders analog clock faces in
four themes, speaks the time in German or English and keeps track of the
levels a learner has completed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			installHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ~/.config/uhrzeit/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.sayCommand())
	root.AddCommand(c.practiceCommand())
	root.AddCommand(c.quizCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.progressCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.storageCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
