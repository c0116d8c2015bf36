package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/couchcryptid/outage-listing-service/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

// DefaultKey is where the last good feed snapshot is stored.
const DefaultKey = "outages:snapshot"

// SnapshotStore keeps the last successfully fetched outage collection in Redis.
// It implements pipeline.SnapshotStore.
type SnapshotStore struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

// New connects to Redis and verifies the connection with a PING.
func New(ctx context.Context, redisURL string, ttl time.Duration) (*SnapshotStore, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewWithClient(client, DefaultKey, ttl), nil
}

// NewWithClient wraps an existing client. A zero ttl stores without expiry.
func NewWithClient(client *goredis.Client, key string, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{client: client, key: key, ttl: ttl}
}

// Save overwrites the stored snapshot.
func (s *SnapshotStore) Save(ctx context.Context, outages []domain.Outage) error {
	data, err := json.Marshal(outages)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot. ok is false when no snapshot exists.
func (s *SnapshotStore) Load(ctx context.Context) (outages []domain.Outage, ok bool, err error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &outages); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return outages, true, nil
}

// Ping reports whether Redis is reachable.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SnapshotStore) Close() error {
	return s.client.Close()
}
