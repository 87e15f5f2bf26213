package session

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity bounds the in-memory store when no size is configured.
const DefaultCapacity = 1024

// MemoryStore keeps the most recently used sessions in process memory.
type MemoryStore struct {
	cache *lru.Cache[string, State]
}

// NewMemoryStore returns a store holding at most capacity sessions.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[string, State](capacity)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: cache}, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	state, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &state, nil
}

func (m *MemoryStore) Save(_ context.Context, state *State) error {
	if state == nil || state.ID == "" {
		return errors.New("session: state requires an id")
	}
	m.cache.Add(state.ID, *state)
	return nil
}

// Len reports the number of cached sessions.
func (m *MemoryStore) Len() int {
	return m.cache.Len()
}
