package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/face"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/game"
	"github.com/matzehuels/uhrzeit/pkg/observability"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path; stdout when empty or "-"
	theme    string // theme id; the stored setting when empty
	size     int    // width and height in pixels
	editable bool   // draw drag handles
	active   string // hand to highlight: "hour" or "minute"
	date     int    // day shown in the date window, 0 for none
	now      bool   // render the current local time
}

// renderCommand creates the render command for writing clock faces as SVG.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{size: face.DefaultSize}

	cmd := &cobra.Command{
		Use:   "render [HH:MM]",
		Short: "Render a clock face to SVG",
		Long: `Render a clock face showing the given time as an SVG document.

Without a time the practice start time 10:30 is shown; --now shows the
current time. The theme defaults to the stored clock theme.`,
		Example: `  uhrzeit render 3:30 --theme tower -o tower.svg
  uhrzeit render --now --theme watch --date 14`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := renderTime(args, opts.now, time.Now())
			if err != nil {
				return err
			}
			return c.runRender(cmd, t, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "clock theme: tower, cuckoo, watch, learning")
	cmd.Flags().IntVarP(&opts.size, "size", "s", opts.size, "width and height in pixels")
	cmd.Flags().BoolVar(&opts.editable, "edit", false, "draw drag handles on the hands")
	cmd.Flags().StringVar(&opts.active, "active", "", "highlight a hand as dragged: hour or minute")
	cmd.Flags().IntVar(&opts.date, "date", 0, "day of month for the date window (1-31)")
	cmd.Flags().BoolVar(&opts.now, "now", false, "render the current time")
	_ = cmd.RegisterFlagCompletionFunc("theme", completeThemes)
	_ = cmd.RegisterFlagCompletionFunc("active", cobra.FixedCompletions([]string{"hour", "minute"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func renderTime(args []string, now bool, wall time.Time) (clock.Time, error) {
	switch {
	case len(args) == 1 && now:
		return clock.Time{}, errors.New(errors.ErrCodeInvalidInput, "give either a time or --now, not both")
	case len(args) == 1:
		return clock.Parse(args[0])
	case now:
		return clock.Time{Hour: wall.Hour(), Minute: wall.Minute()}, nil
	default:
		return clock.Time{Hour: game.PracticeHour, Minute: game.PracticeMinute}, nil
	}
}

func (c *CLI) runRender(cmd *cobra.Command, t clock.Time, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	svgOpts, id, err := c.svgOptions(cmd, opts)
	if err != nil {
		return err
	}

	tm := newTimer(logger)
	start := time.Now()
	svg := face.RenderSVG(t, svgOpts...)
	observability.Render().OnRender(ctx, string(id), opts.size, time.Since(start))
	tm.done("rendered clock", "theme", id, "time", t)

	if opts.output == "" || opts.output == "-" {
		_, err := cmd.OutOrStdout().Write(svg)
		return err
	}
	if err := os.WriteFile(opts.output, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(cmd.ErrOrStderr(), "Rendered %s clock at %s", id, t)
	printFile(cmd.ErrOrStderr(), opts.output)
	return nil
}

// svgOptions validates the flags and resolves the theme, consulting the
// stored settings only when no theme was given.
func (c *CLI) svgOptions(cmd *cobra.Command, opts renderOpts) ([]face.SVGOption, theme.ID, error) {
	if opts.size < 32 || opts.size > 4096 {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "size must be between 32 and 4096, got %d", opts.size)
	}
	if opts.date < 0 || opts.date > 31 {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "date must be between 1 and 31, got %d", opts.date)
	}

	var id theme.ID
	if opts.theme != "" {
		parsed, err := theme.ParseID(opts.theme)
		if err != nil {
			return nil, "", err
		}
		id = parsed
	} else {
		sess, err := c.openSession(cmd.Context())
		if err != nil {
			return nil, "", err
		}
		id = sess.settings.Get(cmd.Context()).ClockTheme
		_ = sess.Close()
	}

	svgOpts := []face.SVGOption{face.WithTheme(theme.Lookup(id)), face.WithSize(opts.size)}
	if opts.editable {
		svgOpts = append(svgOpts, face.WithEditable())
	}
	if opts.active != "" {
		h := clock.ParseHand(opts.active)
		if h == clock.HandNone {
			return nil, "", errors.New(errors.ErrCodeInvalidInput, "--active must be hour or minute, got %q", opts.active)
		}
		svgOpts = append(svgOpts, face.WithActiveHand(h))
	}
	if opts.date > 0 {
		svgOpts = append(svgOpts, face.WithDate(opts.date))
	}
	return svgOpts, id, nil
}

func completeThemes(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	ids := theme.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
