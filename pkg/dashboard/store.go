package dashboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store holds the current state of one dashboard session
type Store struct {
	mu      sync.RWMutex
	state   State
	updated time.Time
}

// NewStore makes a store with the initial state
func NewStore(initial State) *Store {
	return &Store{state: initial, updated: time.Now()}
}

// State returns the current state snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Updated returns time of the last successful Apply
func (s *Store) Updated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

// Apply reduces all actions in order and swaps the result in as a single update.
// If any action fails the state is left unchanged.
func (s *Store) Apply(actions ...Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	for _, a := range actions {
		var err error
		if next, err = Reduce(next, a); err != nil {
			return s.state, fmt.Errorf("apply %s: %w", a.Type, err)
		}
	}
	s.state = next
	s.updated = time.Now()
	return next, nil
}

// Sessions keeps dashboard stores per session id. Idle sessions expire after ttl.
type Sessions struct {
	cache *cache.Cache
	ttl   time.Duration
	limit int
}

// NewSessions makes a session registry; new sessions start with the given news limit
func NewSessions(ttl time.Duration, limit int) *Sessions {
	return &Sessions{
		cache: cache.New(ttl, ttl/2),
		ttl:   ttl,
		limit: limit,
	}
}

// New creates a session with a fresh state and returns its id
func (s *Sessions) New() (string, *Store) {
	id := uuid.NewString()
	store := NewStore(NewState(s.limit))
	s.cache.Set(id, store, s.ttl)
	return id, store
}

// Get returns the store of a live session and extends its lifetime
func (s *Sessions) Get(id string) (*Store, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	store, ok := v.(*Store)
	if !ok {
		return nil, false
	}
	s.cache.Set(id, store, s.ttl)
	return store, true
}

// Delete drops the session
func (s *Sessions) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions
func (s *Sessions) Count() int {
	return s.cache.ItemCount()
}
