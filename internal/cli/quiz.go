package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/game"
	"github.com/matzehuels/uhrzeit/pkg/progress"
)

// quizCommand runs the full-hour quiz against the stored progress.
func (c *CLI) quizCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Read full hours off the clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()
			progress.StartSession(ctx, sess.progress)

			th := theme.Lookup(sess.settings.Get(ctx).ClockTheme)
			m := newQuizModel(ctx, game.NewQuiz(sess.progress), th)
			defer m.Close()
			if _, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := sess.progress.GetProgress(ctx)
			if m.state.Complete {
				printSuccess(out, "Level complete %s", stars(game.RequiredCorrect, game.RequiredCorrect))
			} else {
				printInfo(out, "%d of %d correct this round", m.state.CorrectCount, m.state.Required)
			}
			printDetail(out, "%d correct answers in total", p.TotalCorrectAnswers)
			return nil
		},
	}
}

// =============================================================================
// Key Bindings
// =============================================================================

type quizKeys struct {
	Answer  key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func (k quizKeys) ShortHelp() []key.Binding { return []key.Binding{k.Answer, k.Restart, k.Quit} }

func (k quizKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func newQuizKeys() quizKeys {
	keys := make([]string, game.OptionCount)
	for i := range keys {
		keys[i] = strconv.Itoa(i + 1)
	}
	return quizKeys{
		Answer:  key.NewBinding(key.WithKeys(keys...), key.WithHelp(fmt.Sprintf("1-%d", game.OptionCount), "answer")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// =============================================================================
// Quiz Model
// =============================================================================

// continueMsg ends the feedback pause of an answer.
type continueMsg struct{}

type quizModel struct {
	ctx   context.Context
	quiz  *game.Quiz
	theme theme.Theme
	face  termClock
	zones *zone.Manager
	keys  quizKeys
	help  help.Model
	state game.QuizState
	err   error
}

func newQuizModel(ctx context.Context, q *game.Quiz, th theme.Theme) *quizModel {
	m := &quizModel{
		ctx:   ctx,
		quiz:  q,
		theme: th,
		face:  termClock{rows: clockRows, left: 2, top: 2},
		zones: zone.New(),
		keys:  newQuizKeys(),
		help:  help.New(),
	}
	m.refresh()
	return m
}

// Close stops the zone manager.
func (m *quizModel) Close() { m.zones.Close() }

func (m *quizModel) Init() tea.Cmd { return nil }

func (m *quizModel) refresh() { m.state = m.quiz.State(m.ctx) }

func (m *quizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			m.quiz.Restart()
			m.refresh()
		case key.Matches(msg, m.keys.Answer):
			i, _ := strconv.Atoi(msg.String())
			return m, m.answerOption(i - 1)
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i := range m.state.Question.Options {
			if z := m.zones.Get(optionZone(i)); z != nil && z.InBounds(msg) {
				return m, m.answerOption(i)
			}
		}
	case continueMsg:
		m.quiz.Continue()
		m.refresh()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

// answerOption submits option i and schedules the end of its feedback.
func (m *quizModel) answerOption(i int) tea.Cmd {
	if m.state.Complete || i < 0 || i >= len(m.state.Question.Options) {
		return nil
	}
	if _, err := m.quiz.Answer(m.ctx, m.state.Question.Options[i]); err != nil {
		// a pending answer is ignored until its feedback ends
		m.err = err
		return nil
	}
	m.err = nil
	m.refresh()
	return tea.Tick(m.quiz.Delay(), func(time.Time) tea.Msg { return continueMsg{} })
}

func optionZone(i int) string { return "answer-" + strconv.Itoa(i) }

func (m *quizModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Wie spät ist es?"))
	b.WriteString("  " + stars(m.state.CorrectCount, m.state.Required))
	if m.state.AlreadyCompleted {
		b.WriteString("  " + StyleDim.Render("(already completed)"))
	}
	b.WriteString("\n\n")

	if m.state.Complete && m.state.Feedback == nil {
		b.WriteString("  " + StyleSuccess.Render(iconStar+" Geschafft! Du kannst die vollen Stunden lesen.") + "\n\n")
		b.WriteString("  " + m.help.View(m.keys))
		return m.zones.Scan(b.String())
	}

	t := clock.Time{Hour: m.state.Question.Hour % 12, Minute: 0}
	b.WriteString(indent(m.face.render(t, m.theme, false, clock.HandNone), m.face.left))
	b.WriteString("\n\n  ")

	buttons := make([]string, len(m.state.Question.Options))
	for i, h := range m.state.Question.Options {
		label := fmt.Sprintf("%d  %s", i+1, game.FormatHour(h))
		buttons[i] = m.zones.Mark(optionZone(i), m.buttonStyle(h).Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	b.WriteString("\n\n")

	if fb := m.state.Feedback; fb != nil {
		style := StyleSuccess
		if fb.Kind == game.FeedbackError {
			style = StyleError
		}
		b.WriteString("  " + style.Render(fb.Message))
	}
	b.WriteString("\n\n  " + m.help.View(m.keys))
	return m.zones.Scan(b.String())
}

// buttonStyle marks the correct answer once feedback is shown.
func (m *quizModel) buttonStyle(hour int) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 2).MarginRight(1).Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	if fb := m.state.Feedback; fb != nil && fb.Kind == game.FeedbackSuccess && hour == m.state.Question.Hour {
		return s.BorderForeground(colorGreen).Foreground(colorGreen).Bold(true)
	}
	return s
}
