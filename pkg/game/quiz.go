package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/progress"
)

// Quiz parameters.
const (
	// LevelFullHours identifies the full-hour quiz in learning progress.
	LevelFullHours = "clock_full_hours"

	// RequiredCorrect is the number of correct answers that completes the
	// level.
	RequiredCorrect = 5

	// OptionCount is the number of answer options per question.
	OptionCount = 4

	// SuccessDelay and ErrorDelay are how long feedback stays visible
	// before the host calls Continue.
	SuccessDelay = 1500 * time.Millisecond
	ErrorDelay   = 2000 * time.Millisecond
)

var successMessages = []string{
	"Super gemacht! 🎉",
	"Richtig! Toll! 🌟",
	"Genau! Weiter so! 💪",
	"Prima! Das war richtig! 👏",
	"Fantastisch! 🎊",
}

const errorMessage = "Hmm, das stimmt nicht ganz. Versuche es nochmal! 🤔"

// FeedbackKind classifies an answer.
type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Feedback is shown after an answer until the host continues.
type Feedback struct {
	Kind    FeedbackKind `json:"type"`
	Message string       `json:"message"`
}

// Question is a full hour to read off the clock and the offered answers.
type Question struct {
	Hour    int   `json:"hour"` // 1–12
	Options []int `json:"options"`
}

// FormatHour renders a full hour as the digital time shown on an answer.
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// QuizState is a snapshot of a quiz.
type QuizState struct {
	LevelID          string    `json:"levelId"`
	Question         Question  `json:"question"`
	Feedback         *Feedback `json:"feedback,omitempty"`
	CorrectCount     int       `json:"correctCount"`
	Required         int       `json:"required"`
	Streak           int       `json:"streak"`
	Complete         bool      `json:"complete"`
	AlreadyCompleted bool      `json:"alreadyCompleted"`
}

// QuizOption configures a Quiz.
type QuizOption func(*Quiz)

// WithRand sets the random source for questions, options and messages.
func WithRand(r *rand.Rand) QuizOption { return func(q *Quiz) { q.rng = r } }

// Quiz asks the learner to pick the digital time of a full hour shown on a
// read-only clock. Correct answers are credited to the progress repository;
// reaching RequiredCorrect completes the level once.
type Quiz struct {
	repo progress.Repository
	rng  *rand.Rand

	mu       sync.Mutex
	question Question
	feedback *Feedback
	correct  int
	streak   int
	complete bool
}

// NewQuiz starts a quiz that records into repo.
func NewQuiz(repo progress.Repository, opts ...QuizOption) *Quiz {
	q := &Quiz{repo: repo}
	for _, opt := range opts {
		opt(q)
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	q.question = q.newQuestion()
	return q
}

// State returns a snapshot of the quiz.
func (q *Quiz) State(ctx context.Context) QuizState {
	already := q.repo.IsLevelCompleted(ctx, LevelFullHours)
	q.mu.Lock()
	defer q.mu.Unlock()
	var fb *Feedback
	if q.feedback != nil {
		f := *q.feedback
		fb = &f
	}
	return QuizState{
		LevelID:          LevelFullHours,
		Question:         Question{Hour: q.question.Hour, Options: append([]int(nil), q.question.Options...)},
		Feedback:         fb,
		CorrectCount:     q.correct,
		Required:         RequiredCorrect,
		Streak:           q.streak,
		Complete:         q.complete,
		AlreadyCompleted: already,
	}
}

// Answer checks hour against the current question. Answers are refused with
// ANSWER_PENDING while feedback is shown and with INVALID_INPUT for hours
// outside 1–12.
func (q *Quiz) Answer(ctx context.Context, hour int) (Feedback, error) {
	if hour < 1 || hour > 12 {
		return Feedback{}, errors.New(errors.ErrCodeInvalidInput, "answer must be an hour between 1 and 12, got %d", hour)
	}
	// read before locking; the repository has its own locking
	already := q.repo.IsLevelCompleted(ctx, LevelFullHours)

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.feedback != nil {
		return *q.feedback, errors.New(errors.ErrCodeAnswerPending, "waiting for the previous answer's feedback")
	}

	if hour != q.question.Hour {
		q.streak = 0
		q.feedback = &Feedback{Kind: FeedbackError, Message: errorMessage}
		return *q.feedback, nil
	}

	q.correct++
	q.streak++
	_ = q.repo.IncrementCorrectAnswers(ctx, 1)
	q.feedback = &Feedback{Kind: FeedbackSuccess, Message: successMessages[q.rng.IntN(len(successMessages))]}

	if q.correct >= RequiredCorrect && !already {
		q.complete = true
		if _, err := progress.CompleteLevel(ctx, q.repo, LevelFullHours); err != nil {
			return *q.feedback, err
		}
	}
	return *q.feedback, nil
}

// Delay returns how long the current feedback should stay visible, or zero
// if there is none.
func (q *Quiz) Delay() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch {
	case q.feedback == nil:
		return 0
	case q.feedback.Kind == FeedbackSuccess:
		return SuccessDelay
	default:
		return ErrorDelay
	}
}

// Continue ends the feedback pause. After a correct answer a new question
// is asked; after a wrong one the same question stays.
func (q *Quiz) Continue() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.feedback == nil {
		return
	}
	if q.feedback.Kind == FeedbackSuccess {
		q.question = q.newQuestion()
	}
	q.feedback = nil
}

// Restart resets the round counters and asks a new question.
func (q *Quiz) Restart() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.correct = 0
	q.streak = 0
	q.complete = false
	q.feedback = nil
	q.question = q.newQuestion()
}

func (q *Quiz) newQuestion() Question {
	hour := q.rng.IntN(12) + 1
	return Question{Hour: hour, Options: q.answerOptions(hour)}
}

// answerOptions returns OptionCount distinct hours including correct, in
// random order.
func (q *Quiz) answerOptions(correct int) []int {
	opts := []int{correct}
	for len(opts) < OptionCount {
		h := q.rng.IntN(12) + 1
		if !slices.Contains(opts, h) {
			opts = append(opts, h)
		}
	}
	q.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}
