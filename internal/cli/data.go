package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/progress"
	"github.com/matzehuels/uhrzeit/pkg/settings"
	"github.com/matzehuels/uhrzeit/pkg/speech"
	"github.com/matzehuels/uhrzeit/pkg/storage"
)

// =============================================================================
// progress
// =============================================================================

func (c *CLI) progressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show or reset learning progress",
	}
	cmd.AddCommand(c.progressShowCommand())
	cmd.AddCommand(c.progressResetCommand())
	return cmd
}

func (c *CLI) progressShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show learning progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()
			printProgress(cmd, sess.progress.GetProgress(cmd.Context()))
			return nil
		},
	}
}

func printProgress(cmd *cobra.Command, p progress.LearningProgress) {
	out := cmd.OutOrStdout()
	levels := "none"
	if len(p.CompletedLevels) > 0 {
		levels = strings.Join(p.CompletedLevels, ", ")
	}
	lastPlayed := "never"
	if p.LastPlayedAt != nil {
		lastPlayed = p.LastPlayedAt.Local().Format("2006-01-02 15:04")
	}
	printKeyValue(out, "Completed", levels)
	printKeyValue(out, "Correct answers", strconv.Itoa(p.TotalCorrectAnswers))
	printKeyValue(out, "Sessions", strconv.Itoa(p.SessionsPlayed))
	printKeyValue(out, "Last played", lastPlayed)
}

func (c *CLI) progressResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget all learning progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()
			sess.progress.ResetProgress(cmd.Context())
			printSuccess(cmd.OutOrStdout(), "Progress reset")
			return nil
		},
	}
}

// =============================================================================
// settings
// =============================================================================

func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}
	cmd.AddCommand(c.settingsShowCommand())
	cmd.AddCommand(c.settingsSetCommand())
	cmd.AddCommand(c.settingsResetCommand())
	return cmd
}

func (c *CLI) settingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()
			printSettings(cmd, sess.settings.Get(cmd.Context()))
			return nil
		},
	}
}

func printSettings(cmd *cobra.Command, s settings.Settings) {
	out := cmd.OutOrStdout()
	th := theme.Lookup(s.ClockTheme)
	sound := "on"
	if !s.SoundEnabled {
		sound = "off"
	}
	lang := string(s.Language)
	if s.Language == speech.SettingAuto {
		lang = fmt.Sprintf("auto (%s)", speech.ResolveLanguage(s.Language, speech.SystemLanguage()))
	}
	printKeyValue(out, "Theme", fmt.Sprintf("%s %s (%s)", th.Icon, th.Name, th.ID))
	printKeyValue(out, "Sound", sound)
	printKeyValue(out, "Language", lang)
}

func (c *CLI) settingsSetCommand() *cobra.Command {
	var themeFlag, langFlag string
	var sound bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Example: `  uhrzeit settings set --theme tower
  uhrzeit settings set --sound=false --lang de`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p settings.Patch
			if cmd.Flags().Changed("theme") {
				id := theme.ID(themeFlag)
				p.ClockTheme = &id
			}
			if cmd.Flags().Changed("sound") {
				p.SoundEnabled = &sound
			}
			if cmd.Flags().Changed("lang") {
				lang := speech.Setting(langFlag)
				p.Language = &lang
			}
			if p == (settings.Patch{}) {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to change: use --theme, --sound or --lang")
			}

			sess, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()
			s, err := sess.settings.Update(cmd.Context(), p)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Settings saved")
			printSettings(cmd, s)
			return nil
		},
	}
	cmd.Flags().StringVarP(&themeFlag, "theme", "t", "", "clock theme id")
	cmd.Flags().BoolVar(&sound, "sound", true, "read times aloud")
	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "speech language: auto, de, en")
	_ = cmd.RegisterFlagCompletionFunc("theme", completeThemes)
	_ = cmd.RegisterFlagCompletionFunc("lang", cobra.FixedCompletions([]string{"auto", "de", "en"}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func (c *CLI) settingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()
			s := sess.settings.Reset(cmd.Context())
			printSuccess(cmd.OutOrStdout(), "Settings reset")
			printSettings(cmd, s)
			return nil
		},
	}
}

// =============================================================================
// storage
// =============================================================================

func (c *CLI) storageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect the player data store",
	}
	cmd.AddCommand(c.storageKeysCommand())
	cmd.AddCommand(c.storageClearCommand())
	cmd.AddCommand(c.storagePathCommand())
	return cmd
}

func (c *CLI) storageKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()
			keys := sess.client.Keys(cmd.Context())
			if len(keys) == 0 {
				printInfo(cmd.OutOrStdout(), "No keys under prefix %q", sess.client.Prefix())
				return nil
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func (c *CLI) storageClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all uhrzeit keys, keeping other data in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()
			count := len(sess.client.Keys(cmd.Context()))
			sess.client.Clear(cmd.Context())
			if left := len(sess.client.Keys(cmd.Context())); left > 0 {
				printError(cmd.OutOrStdout(), "%d keys could not be removed", left)
				return errors.New(errors.ErrCodeStorageUnavailable, "clear storage")
			}
			printSuccess(cmd.OutOrStdout(), "Cleared %d keys", count)
			return nil
		},
	}
}

func (c *CLI) storagePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where player data is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := storageLocation(c.Config().Storage)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loc)
			return nil
		},
	}
}

// storageLocation describes where cfg keeps its data: a path for the local
// drivers and the connection URL for the remote ones.
func storageLocation(cfg storage.Config) (string, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", storage.DriverFile, storage.DriverSQLite:
		if cfg.Path != "" {
			return cfg.Path, nil
		}
		dir, err := storage.DefaultDir()
		if err != nil {
			return "", err
		}
		if driver == storage.DriverSQLite {
			return filepath.Join(dir, "uhrzeit.db"), nil
		}
		return dir, nil
	case storage.DriverMemory:
		return "memory (not persisted)", nil
	case storage.DriverRedis:
		return cfg.RedisURL, nil
	case storage.DriverMongo:
		return cfg.MongoURI, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown storage driver %q", cfg.Driver)
}
