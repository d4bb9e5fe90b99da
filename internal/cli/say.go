package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uhrzeit/pkg/speech"
)

// sayCommand creates the say command, which prints and speaks a time.
func (c *CLI) sayCommand() *cobra.Command {
	var (
		lang   string
		now    bool
		silent bool
	)

	cmd := &cobra.Command{
		Use:   "say [HH:MM]",
		Short: "Print and speak a time",
		Long: `Print the spoken form of a time and read it aloud.

German times use the colloquial quarter forms ("viertel nach 6", "halb 7").
Speech uses espeak-ng, espeak or say, whichever is installed, or the
command configured under [speech].`,
		Example: `  uhrzeit say 6:30 --lang de
  uhrzeit say --now`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := renderTime(args, now, time.Now())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			setting := speech.SettingAuto
			if lang != "" {
				if setting, err = speech.ParseSetting(lang); err != nil {
					return err
				}
			} else if sess, err := c.openSession(ctx); err == nil {
				setting = sess.settings.Get(ctx).Language
				_ = sess.Close()
			}

			if silent {
				u := speech.NewUtterance(t.Hour, t.Minute, setting, speech.SystemLanguage())
				fmt.Fprintln(out, u.Text)
				return nil
			}

			speaker := c.newSpeaker()
			u := speaker.Speak(ctx, t.Hour, t.Minute, setting)
			fmt.Fprintln(out, u.Text)
			if !speaker.Available() {
				printWarning(cmd.ErrOrStderr(), "No speech synthesizer found")
				printDetail(cmd.ErrOrStderr(), "Install espeak-ng or set [speech] command in the config")
				return nil
			}

			sp := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), "Speaking...")
			sp.Start()
			speaker.Wait()
			sp.Stop()
			return ctx.Err()
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language: auto, de, en (default the stored setting)")
	cmd.Flags().BoolVar(&now, "now", false, "speak the current time")
	cmd.Flags().BoolVar(&silent, "silent", false, "print the phrase without speaking")
	_ = cmd.RegisterFlagCompletionFunc("lang", cobra.FixedCompletions([]string{"auto", "de", "en"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
