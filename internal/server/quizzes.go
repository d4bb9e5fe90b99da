package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/game"
)

// quizTTL is how long an untouched quiz session is kept.
const quizTTL = time.Hour

type quizEntry struct {
	player   string
	quiz     *game.Quiz
	lastUsed time.Time
}

// quizStore holds the running quiz sessions of all players in memory.
type quizStore struct {
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[string]*quizEntry
}

func newQuizStore(c clockwork.Clock) *quizStore {
	return &quizStore{clock: c, entries: make(map[string]*quizEntry)}
}

// add registers q for player and returns its id. Expired sessions are
// dropped on the way.
func (s *quizStore) add(player string, q *game.Quiz) string {
	now := s.clock.Now()
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if now.Sub(e.lastUsed) > quizTTL {
			delete(s.entries, k)
		}
	}
	s.entries[id] = &quizEntry{player: player, quiz: q, lastUsed: now}
	return id
}

// get returns the quiz id of player. Sessions of other players and expired
// sessions are reported as NOT_FOUND.
func (s *quizStore) get(player, id string) (*game.Quiz, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if ok && now.Sub(e.lastUsed) > quizTTL {
		delete(s.entries, id)
		ok = false
	}
	if !ok || e.player != player {
		return nil, errors.New(errors.ErrCodeNotFound, "quiz %s not found", id)
	}
	e.lastUsed = now
	return e.quiz, nil
}

func (s *quizStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
