package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis, for deployments where the session
// snapshot must be shared between several client processes (kiosks, render
// workers) the way browser storage is shared between tabs.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the default "blogkit:session" key prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithSnapshotTTL sets an expiry on stored snapshots. Zero means no expiry.
func WithSnapshotTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("session redis store: client is required")
	}

	s := &RedisStore{
		client: client,
		prefix: "blogkit:session",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RedisStore) key(kind Kind) string {
	return s.prefix + ":" + kind.String()
}

// Load returns the snapshot for a kind.
func (s *RedisStore) Load(ctx context.Context, kind Kind) (*Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load session snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Join(ErrInvalidSnapshot, err)
	}
	return &snap, nil
}

// Save stores the snapshot for a kind.
func (s *RedisStore) Save(ctx context.Context, kind Kind, snap *Snapshot) error {
	if snap == nil {
		return ErrInvalidSnapshot
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key(kind), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session snapshot: %w", err)
	}
	return nil
}

// Clear removes the snapshot for a kind.
func (s *RedisStore) Clear(ctx context.Context, kind Kind) error {
	if err := s.client.Del(ctx, s.key(kind)).Err(); err != nil {
		return fmt.Errorf("clear session snapshot: %w", err)
	}
	return nil
}
