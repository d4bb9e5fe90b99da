package cli

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/game"
	"github.com/matzehuels/uhrzeit/pkg/progress"
	"github.com/matzehuels/uhrzeit/pkg/settings"
	"github.com/matzehuels/uhrzeit/pkg/speech"
	"github.com/matzehuels/uhrzeit/pkg/storage"
)

func TestTermClockCoordinates(t *testing.T) {
	tc := termClock{rows: clockRows, left: 2, top: 2}

	x, y := tc.screenCell(clock.Center, clock.Center)
	ev := tc.pointer(x, y)
	r, _ := tc.surface().Bounds()
	vx := (ev.X - r.Left) * clock.ViewBox / r.Width
	vy := (ev.Y - r.Top) * clock.ViewBox / r.Height
	col, row := x-tc.left, y-tc.top
	wx, wy := tc.toViewBox(col, row)
	if vx != wx || vy != wy {
		t.Errorf("pointer maps to (%g, %g), cell center is (%g, %g)", vx, vy, wx, wy)
	}

	if col, row := tc.cellAt(-10, 500); col != 0 || row != tc.rows-1 {
		t.Errorf("cellAt outside the face = (%d, %d), want clamped", col, row)
	}
}

func TestTermClockRender(t *testing.T) {
	tc := termClock{rows: clockRows}
	th := theme.Lookup(theme.IDTower)

	out := tc.render(clock.Time{Hour: 3, Minute: 0}, th, false, clock.HandNone)
	if lines := strings.Split(out, "\n"); len(lines) != clockRows {
		t.Errorf("render produced %d lines, want %d", len(lines), clockRows)
	}
	for _, want := range []string{"█", "▪", "●", "X"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if strings.Contains(out, "◉") {
		t.Error("read-only clock should not draw handles")
	}

	if out := tc.render(clock.Time{Hour: 3}, th, true, clock.HandMinute); !strings.Contains(out, "◉") {
		t.Error("editable clock should draw handles")
	}
}

func newTestPractice(t *testing.T) *practiceModel {
	t.Helper()
	g := game.NewPractice(nil, game.WithClock(clockwork.NewFakeClock()))
	s := settings.Defaults()
	s.Language = speech.SettingGerman
	m := newPracticeModel(context.Background(), g, s)
	t.Cleanup(m.Close)
	return m
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestPracticeDragMinuteHand(t *testing.T) {
	m := newTestPractice(t)

	// minute handle at 10:30 points straight down
	x, y := m.face.screenCell(clock.Center, clock.Center+45)
	m.Update(mouse(tea.MouseActionPress, x, y))
	if got := m.widget.Drag().Active; got != clock.HandMinute {
		t.Fatalf("active hand after press = %v, want minute", got)
	}

	x, y = m.face.screenCell(180, clock.Center)
	m.Update(mouse(tea.MouseActionMotion, x, y))
	if got := m.game.Time(); got != (clock.Time{Hour: 10, Minute: 15}) {
		t.Errorf("time after drag = %v, want 10:15", got)
	}
	if got := m.widget.Props().Minute; got != 15 {
		t.Errorf("widget minute = %d, want 15", got)
	}

	m.Update(mouse(tea.MouseActionRelease, x, y))
	if m.widget.Dragging() {
		t.Error("drag should end on release")
	}
}

func TestPracticeKeys(t *testing.T) {
	m := newTestPractice(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.game.Time(); got != (clock.Time{Hour: 11, Minute: 29}) {
		t.Errorf("time after keys = %v, want 11:29", got)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatal("speaking should schedule the end of the cooldown")
	}
	if !strings.Contains(m.spoken, "11") {
		t.Errorf("spoken text %q does not mention the hour", m.spoken)
	}
	if !strings.Contains(m.View(), m.spoken) {
		t.Error("view should show the spoken text")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}); cmd != nil {
		t.Error("speaking during the cooldown should be refused")
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit")
	}
}

func newTestQuiz(t *testing.T) (*quizModel, *progress.LocalRepository) {
	t.Helper()
	repo := progress.NewLocalRepository(storage.NewClient(storage.NewMemory()))
	q := game.NewQuiz(repo, game.WithRand(rand.New(rand.NewPCG(1, 2))))
	m := newQuizModel(context.Background(), q, theme.Lookup(theme.IDLearning))
	t.Cleanup(m.Close)
	return m, repo
}

func keyFor(m *quizModel, hour int) tea.KeyMsg {
	for i, h := range m.state.Question.Options {
		if h == hour {
			return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune('1' + i)}}
		}
	}
	return tea.KeyMsg{}
}

func wrongHour(m *quizModel) int {
	for _, h := range m.state.Question.Options {
		if h != m.state.Question.Hour {
			return h
		}
	}
	return 0
}

func TestQuizModelWrongAnswer(t *testing.T) {
	m, _ := newTestQuiz(t)
	hour := m.state.Question.Hour

	_, cmd := m.Update(keyFor(m, wrongHour(m)))
	if cmd == nil {
		t.Fatal("an answer should schedule its feedback end")
	}
	if fb := m.state.Feedback; fb == nil || fb.Kind != game.FeedbackError {
		t.Fatalf("feedback = %+v, want error", fb)
	}
	if _, cmd := m.Update(keyFor(m, hour)); cmd != nil {
		t.Error("answers during feedback should be ignored")
	}

	m.Update(continueMsg{})
	if m.state.Feedback != nil {
		t.Error("continue should clear the feedback")
	}
	if m.state.Question.Hour != hour {
		t.Error("a wrong answer should keep the question")
	}
}

func TestQuizModelCompletesLevel(t *testing.T) {
	m, repo := newTestQuiz(t)

	for i := 0; i < game.RequiredCorrect; i++ {
		m.Update(keyFor(m, m.state.Question.Hour))
		if fb := m.state.Feedback; fb == nil || fb.Kind != game.FeedbackSuccess {
			t.Fatalf("answer %d feedback = %+v, want success", i, fb)
		}
		m.Update(continueMsg{})
	}

	if !m.state.Complete {
		t.Fatal("quiz should be complete")
	}
	if !strings.Contains(m.View(), "Geschafft") {
		t.Error("view should show the completion screen")
	}
	if !repo.GetProgress(context.Background()).Completed(game.LevelFullHours) {
		t.Error("level should be recorded as completed")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.state.Complete || m.state.CorrectCount != 0 {
		t.Errorf("restart should reset the round, got %+v", m.state)
	}
	if !m.state.AlreadyCompleted {
		t.Error("restarted quiz should know the level is completed")
	}
}

func TestQuizModelView(t *testing.T) {
	m, _ := newTestQuiz(t)
	view := m.View()
	for _, h := range m.state.Question.Options {
		if !strings.Contains(view, game.FormatHour(h)) {
			t.Errorf("view missing option %s", game.FormatHour(h))
		}
	}
	if !strings.Contains(view, "☆") {
		t.Error("view should show the star bar")
	}
}
