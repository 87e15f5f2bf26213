package session

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound reports that no state is stored under an id.
var ErrNotFound = errors.New("session: not found")

// State is the per-conversation memory carried between commands.
type State struct {
	ID        string `json:"id" msgpack:"id"`
	LastDraft string `json:"last_draft,omitempty" msgpack:"last_draft,omitempty"`
}

// Store persists session state.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, state *State) error
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Load fetches the state for id, starting a new session when id is empty or
// unknown. An unknown id is kept so callers can echo it back.
func Load(ctx context.Context, store Store, id string) (*State, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return &State{ID: NewID()}, nil
	}
	state, err := store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &State{ID: id}, nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}
