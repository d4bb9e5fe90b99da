// Package progress tracks a learner's completed levels and counters.
//
// A [Repository] persists [LearningProgress]. [LocalRepository] keeps it as
// one JSON document under the key "learning_progress" of a storage client;
// stored documents are merged over the initial progress, so documents
// written by older versions load with defaults for new fields.
package progress

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/storage"
)

// StorageKey is the storage key of the progress document.
const StorageKey = "learning_progress"

// LearningProgress is a learner's accumulated progress.
type LearningProgress struct {
	CompletedLevels     []string   `json:"completedLevels"`
	LastPlayedAt        *time.Time `json:"lastPlayedAt,omitempty"`
	TotalCorrectAnswers int        `json:"totalCorrectAnswers"`
	SessionsPlayed      int        `json:"sessionsPlayed"`
}

// Initial returns empty progress.
func Initial() LearningProgress {
	return LearningProgress{CompletedLevels: []string{}}
}

// Completed reports whether level id is in p.
func (p LearningProgress) Completed(id string) bool {
	return slices.Contains(p.CompletedLevels, id)
}

// Repository persists learning progress. Storage failures never surface:
// reads fall back to the initial progress and writes are discarded. Only
// invalid arguments are reported as errors.
type Repository interface {
	GetProgress(ctx context.Context) LearningProgress
	SaveProgress(ctx context.Context, p LearningProgress)
	MarkLevelCompleted(ctx context.Context, id string) error
	IncrementCorrectAnswers(ctx context.Context, n int) error
	IncrementSessions(ctx context.Context)
	UpdateLastPlayed(ctx context.Context)
	ResetProgress(ctx context.Context)
	IsLevelCompleted(ctx context.Context, id string) bool
}

// StartSession records the start of a play session.
func StartSession(ctx context.Context, r Repository) LearningProgress {
	r.IncrementSessions(ctx)
	r.UpdateLastPlayed(ctx)
	return r.GetProgress(ctx)
}

// CompleteLevel marks level id completed and records the play time.
func CompleteLevel(ctx context.Context, r Repository, id string) (LearningProgress, error) {
	if err := r.MarkLevelCompleted(ctx, id); err != nil {
		return r.GetProgress(ctx), err
	}
	r.UpdateLastPlayed(ctx)
	return r.GetProgress(ctx), nil
}

// LocalRepository stores progress through a storage client.
type LocalRepository struct {
	client *storage.Client
	clock  clockwork.Clock

	// serializes read-modify-write cycles
	mu sync.Mutex
}

// Option configures a LocalRepository.
type Option func(*LocalRepository)

// WithClock sets the clock used for LastPlayedAt.
func WithClock(c clockwork.Clock) Option { return func(r *LocalRepository) { r.clock = c } }

// NewLocalRepository creates a repository on client.
func NewLocalRepository(client *storage.Client, opts ...Option) *LocalRepository {
	r := &LocalRepository{client: client, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetProgress returns the stored progress, or the initial progress if
// nothing is stored.
func (r *LocalRepository) GetProgress(ctx context.Context) LearningProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// SaveProgress replaces the stored progress.
func (r *LocalRepository) SaveProgress(ctx context.Context, p LearningProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.save(ctx, p)
}

// MarkLevelCompleted adds id to the completed levels if it is not there yet.
func (r *LocalRepository) MarkLevelCompleted(ctx context.Context, id string) error {
	if err := errors.ValidateLevelID(id); err != nil {
		return err
	}
	r.update(ctx, func(p *LearningProgress) bool {
		if p.Completed(id) {
			return false
		}
		p.CompletedLevels = append(p.CompletedLevels, id)
		return true
	})
	return nil
}

// IncrementCorrectAnswers adds n to the correct answer count.
func (r *LocalRepository) IncrementCorrectAnswers(ctx context.Context, n int) error {
	if n < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "count must be positive, got %d", n)
	}
	r.update(ctx, func(p *LearningProgress) bool {
		p.TotalCorrectAnswers += n
		return true
	})
	return nil
}

// IncrementSessions adds one to the session count.
func (r *LocalRepository) IncrementSessions(ctx context.Context) {
	r.update(ctx, func(p *LearningProgress) bool {
		p.SessionsPlayed++
		return true
	})
}

// UpdateLastPlayed sets LastPlayedAt to now.
func (r *LocalRepository) UpdateLastPlayed(ctx context.Context) {
	now := r.clock.Now().UTC()
	r.update(ctx, func(p *LearningProgress) bool {
		p.LastPlayedAt = &now
		return true
	})
}

// ResetProgress deletes the stored progress.
func (r *LocalRepository) ResetProgress(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.client.RemoveItem(ctx, StorageKey)
}

// IsLevelCompleted reports whether level id is completed.
func (r *LocalRepository) IsLevelCompleted(ctx context.Context, id string) bool {
	return r.GetProgress(ctx).Completed(id)
}

func (r *LocalRepository) update(ctx context.Context, fn func(*LearningProgress) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.load(ctx)
	if fn(&p) {
		r.save(ctx, p)
	}
}

func (r *LocalRepository) load(ctx context.Context) LearningProgress {
	p := Initial()
	if !r.client.GetItem(ctx, StorageKey, &p) {
		return Initial()
	}
	if p.CompletedLevels == nil {
		p.CompletedLevels = []string{}
	}
	return p
}

func (r *LocalRepository) save(ctx context.Context, p LearningProgress) {
	if p.CompletedLevels == nil {
		p.CompletedLevels = []string{}
	}
	r.client.SetItem(ctx, StorageKey, p)
}

// Ensure LocalRepository implements Repository.
var _ Repository = (*LocalRepository)(nil)
