package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
)

// themesCommand lists the clock themes. The stored theme is marked.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the clock themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := c.Config().Theme()
			if sess, err := c.openSession(cmd.Context()); err == nil {
				current = sess.settings.Get(cmd.Context()).ClockTheme
				_ = sess.Close()
			}
			fmt.Fprintln(cmd.OutOrStdout(), themeTable(theme.All(), current))
			printNextStep(cmd.OutOrStdout(), "Change theme", "uhrzeit settings set --theme <id>")
			return nil
		},
	}
}

func themeTable(all []theme.Theme, current theme.ID) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(all))
	for i, th := range all {
		mark := "  "
		if th.ID == current {
			mark = StyleSuccess.Render(iconSuccess) + " "
		}
		numerals := "arabic"
		if th.RomanNumerals {
			numerals = "roman"
		}
		rows[i] = []string{mark, th.Icon + " " + string(th.ID), th.Name, numerals, th.Description}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Numerals", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(all) && all[row].ID == current {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 4 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
