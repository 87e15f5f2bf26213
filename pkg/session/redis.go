package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// DefaultTTL is how long an idle session survives in Redis.
const DefaultTTL = 24 * time.Hour

// KV is the subset of *redis.Redis used by RedisStore.
type KV interface {
	GetCtx(ctx context.Context, key string) (string, error)
	SetexCtx(ctx context.Context, key, value string, seconds int) error
}

var _ KV = (*redis.Redis)(nil)

// RedisStore keeps msgpack-encoded session state in Redis with a sliding TTL.
type RedisStore struct {
	kv  KV
	ttl time.Duration
}

// NewRedisStore wraps kv. A non-positive ttl selects DefaultTTL.
func NewRedisStore(kv KV, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{kv: kv, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	raw, err := r.kv.GetCtx(ctx, Key(id))
	if err != nil {
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}
	// go-zero maps a missing key to an empty value.
	if raw == "" {
		return nil, ErrNotFound
	}
	var state State
	if err := msgpack.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", id, err)
	}
	if state.ID == "" {
		state.ID = id
	}
	return &state, nil
}

func (r *RedisStore) Save(ctx context.Context, state *State) error {
	if state == nil || state.ID == "" {
		return errors.New("session: state requires an id")
	}
	payload, err := msgpack.Marshal(state)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", state.ID, err)
	}
	seconds := int(r.ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	if err := r.kv.SetexCtx(ctx, Key(state.ID), string(payload), seconds); err != nil {
		return fmt.Errorf("session: save %s: %w", state.ID, err)
	}
	return nil
}
