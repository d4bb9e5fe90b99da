package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/clock/widget"
	"github.com/matzehuels/uhrzeit/pkg/game"
	"github.com/matzehuels/uhrzeit/pkg/progress"
	"github.com/matzehuels/uhrzeit/pkg/settings"
)

// clockRows is the height of the terminal clock in rows.
const clockRows = 21

// practiceCommand opens the practice screen, where the hands are dragged
// with the mouse or moved with the keyboard.
func (c *CLI) practiceCommand() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Set the clock by dragging its hands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var opts []game.PracticeOption
			if start != "" {
				t, err := clock.Parse(start)
				if err != nil {
					return err
				}
				opts = append(opts, game.WithStartTime(t))
			}

			sess, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()
			progress.StartSession(ctx, sess.progress)

			speaker := c.newSpeaker()
			defer speaker.Cancel()

			m := newPracticeModel(ctx, game.NewPractice(speaker, opts...), sess.settings.Get(ctx))
			defer m.Close()
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start time as HH:MM (default 10:30)")
	return cmd
}

// =============================================================================
// Key Bindings
// =============================================================================

type practiceKeys struct {
	HourUp     key.Binding
	HourDown   key.Binding
	MinuteUp   key.Binding
	MinuteDown key.Binding
	HalfDay    key.Binding
	Speak      key.Binding
	Quit       key.Binding
}

func (k practiceKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.HourUp, k.MinuteUp, k.HalfDay, k.Speak, k.Quit}
}

func (k practiceKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.HourUp, k.HourDown}, {k.MinuteUp, k.MinuteDown}, {k.HalfDay, k.Speak, k.Quit}}
}

func newPracticeKeys() practiceKeys {
	return practiceKeys{
		HourUp:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "hour")),
		HourDown:   key.NewBinding(key.WithKeys("left", "h")),
		MinuteUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "minute")),
		MinuteDown: key.NewBinding(key.WithKeys("down", "j")),
		HalfDay:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "am/pm")),
		Speak:      key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "speak")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// =============================================================================
// Practice Model
// =============================================================================

// cooldownDoneMsg redraws the speak control when its cooldown is over.
type cooldownDoneMsg struct{}

// practiceModel hosts a widget on the terminal clock. The practice game
// owns the time; the widget only proposes new hour and minute values.
type practiceModel struct {
	ctx      context.Context
	game     *game.Practice
	settings settings.Settings
	face     termClock
	doc      *widget.Document
	widget   *widget.Widget
	keys     practiceKeys
	help     help.Model
	spoken   string
}

func newPracticeModel(ctx context.Context, g *game.Practice, s settings.Settings) *practiceModel {
	m := &practiceModel{
		ctx:      ctx,
		game:     g,
		settings: s,
		face:     termClock{rows: clockRows, left: 2, top: 2},
		doc:      widget.NewDocument(),
		keys:     newPracticeKeys(),
		help:     help.New(),
	}
	m.widget = widget.New(m.doc, m.face.surface(), g.WidgetProps(s, 0))
	return m
}

// Close ends a drag left open when the program exits.
func (m *practiceModel) Close() { m.widget.Close() }

func (m *practiceModel) Init() tea.Cmd { return nil }

func (m *practiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case cooldownDoneMsg:
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *practiceModel) handleMouse(msg tea.MouseMsg) {
	ev := m.face.pointer(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.widget.PointerDownAt(ev)
	case msg.Action == tea.MouseActionMotion:
		m.doc.Dispatch(widget.MouseMove, ev)
	case msg.Action == tea.MouseActionRelease:
		m.doc.Dispatch(widget.MouseUp, ev)
	}
	m.sync()
}

func (m *practiceModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	t := m.game.Time()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.HourUp):
		m.game.SetHour((t.Hour + 1) % 12)
	case key.Matches(msg, m.keys.HourDown):
		m.game.SetHour((t.Hour + 11) % 12)
	case key.Matches(msg, m.keys.MinuteUp):
		m.game.SetMinute((t.Minute + 1) % 60)
	case key.Matches(msg, m.keys.MinuteDown):
		m.game.SetMinute((t.Minute + 59) % 60)
	case key.Matches(msg, m.keys.HalfDay):
		m.game.ToggleHalfDay()
	case key.Matches(msg, m.keys.Speak):
		u, ok := m.game.Speak(m.ctx, m.settings)
		if !ok {
			return nil
		}
		m.spoken = u.Text
		m.sync()
		return tea.Tick(game.SpeakCooldown, func(time.Time) tea.Msg { return cooldownDoneMsg{} })
	}
	m.sync()
	return nil
}

// sync hands the owner's current time back to the widget.
func (m *practiceModel) sync() {
	m.widget.SetProps(m.game.WidgetProps(m.settings, 0))
}

func (m *practiceModel) View() string {
	t := m.game.Time()
	th := theme.Lookup(m.settings.ClockTheme)

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Uhrzeit üben · %s %s", th.Icon, th.Name)))
	b.WriteString("\n\n")
	b.WriteString(indent(m.face.render(t, th, m.widget.CanDrag(), m.widget.Drag().Active), m.face.left))
	b.WriteString("\n\n")

	b.WriteString("  " + StyleHighlight.Bold(true).Render(t.String()))
	if m.game.SpeakVisible(m.settings) {
		label := "🔊 Sprechen"
		if m.game.CoolingDown() {
			label = StyleDim.Render(label)
		}
		b.WriteString("   " + label)
	}
	b.WriteString("\n")
	if m.spoken != "" {
		b.WriteString("  " + StyleDim.Render("„"+m.spoken+"“"))
	}
	b.WriteString("\n\n")
	b.WriteString("  " + m.help.View(m.keys))
	return b.String()
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}
