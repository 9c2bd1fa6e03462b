package repositories

import (
	"context"
	"sync"

	"github.com/vbokhan/spy-cat-agency/internal/models"
)

// Store holds every entity collection behind a single lock. Multi-step
// rules (assign a cat, complete a target, cascade a delete) run inside
// WithTransaction so no caller ever observes a half-updated link.
type Store struct {
	mu sync.RWMutex

	cats     map[int64]models.Cat
	catOrder []int64

	// mission rows never embed targets; targets are resolved by mission id
	// at read time
	missions     map[int64]models.Mission
	missionOrder []int64

	targets     map[int64]models.Target
	targetOrder []int64

	nextCatId     int64
	nextMissionId int64
	nextTargetId  int64
}

func NewStore() *Store {
	s := &Store{}
	s.init()
	return s
}

func (s *Store) init() {
	s.cats = make(map[int64]models.Cat)
	s.catOrder = nil
	s.missions = make(map[int64]models.Mission)
	s.missionOrder = nil
	s.targets = make(map[int64]models.Target)
	s.targetOrder = nil
	s.nextCatId = 1
	s.nextMissionId = 1
	s.nextTargetId = 1
}

// Tx is a handle proving the store lock is held. Repository methods that
// take a Tx never lock on their own.
type Tx struct {
	store *Store
}

// WithTransaction runs fn under the write lock as a single atomic unit.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{store: s})
}

// View runs fn under the read lock for composite reads.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{store: s})
}

// Reset drops every collection and restarts all id counters at 1. Called at
// process start and from test harnesses; never routed to clients.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
}

// window applies skip-then-take slice semantics; out of range yields empty.
func window(order []int64, skip, limit int) []int64 {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(order) {
		return nil
	}
	end := skip + limit
	if limit < 0 || end > len(order) {
		end = len(order)
	}
	return order[skip:end]
}

func removeId(order []int64, id int64) []int64 {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
