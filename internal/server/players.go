package server

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/uhrzeit/pkg/progress"
	"github.com/matzehuels/uhrzeit/pkg/settings"
	"github.com/matzehuels/uhrzeit/pkg/storage"
)

// playerTTL is how long the repositories of an idle player are kept.
const playerTTL = 2 * quizTTL

// playerData is the persistence of one player. All requests and quiz
// sessions of the player share it, so its locks serialize their updates.
type playerData struct {
	progress *progress.LocalRepository
	settings *settings.Store
	lastUsed time.Time
}

// playerStore hands out one playerData per player.
type playerStore struct {
	client *storage.Client
	clock  clockwork.Clock

	mu       sync.Mutex
	defaults settings.Settings
	players  map[string]*playerData
}

func newPlayerStore(client *storage.Client, c clockwork.Clock, defaults settings.Settings) *playerStore {
	return &playerStore{client: client, clock: c, defaults: defaults, players: make(map[string]*playerData)}
}

// playerScopePrefix namespaces a player's keys under the client prefix.
func playerScopePrefix(id string) string {
	return "player_" + id + "_"
}

// get returns the data of player, creating it on first use. Idle players
// are dropped on the way.
func (s *playerStore) get(player string) *playerData {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, d := range s.players {
		if k != player && now.Sub(d.lastUsed) > playerTTL {
			delete(s.players, k)
		}
	}
	d, ok := s.players[player]
	if !ok {
		scoped := s.client.Scoped(playerScopePrefix(player))
		d = &playerData{
			progress: progress.NewLocalRepository(scoped, progress.WithClock(s.clock)),
			settings: settings.NewStore(scoped, settings.WithDefaults(s.defaults)),
		}
		s.players[player] = d
	}
	d.lastUsed = now
	return d
}

// setDefaults replaces the settings defaults of current and future players.
func (s *playerStore) setDefaults(d settings.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = d
	for _, p := range s.players {
		p.settings.SetDefaults(d)
	}
}

func (s *playerStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}
