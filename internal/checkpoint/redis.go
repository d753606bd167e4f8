package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/oncoseed/internal/domain"
)

const redisKeyPrefix = "checkpoint:"

// RedisStore persists checkpoints in Redis. Snapshots carry no TTL: a
// checkpoint stays valid until the stage is regenerated or deleted.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and verifies the server is reachable.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromURL parses a redis:// URL and connects.
func NewRedisStoreFromURL(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func redisKey(stage string) string {
	return redisKeyPrefix + stage
}

// Save replaces the stage's snapshot.
func (s *RedisStore) Save(ctx context.Context, stage string, records []domain.Record) error {
	snap := newSnapshot(stage, records)

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint %q: %w", stage, err)
	}

	if err := s.client.Set(ctx, redisKey(stage), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write checkpoint %q: %w", stage, err)
	}
	return nil
}

// Load returns the stage's records.
func (s *RedisStore) Load(ctx context.Context, stage string) ([]domain.Record, error) {
	data, err := s.client.Get(ctx, redisKey(stage)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: stage %q", ErrMissingCheckpoint, stage)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint %q: %w", stage, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint %q: %w", stage, err)
	}
	if snap.Records == nil {
		snap.Records = []domain.Record{}
	}
	return snap.Records, nil
}

// Delete removes the stage's checkpoint if present.
func (s *RedisStore) Delete(ctx context.Context, stage string) error {
	if err := s.client.Del(ctx, redisKey(stage)).Err(); err != nil {
		return fmt.Errorf("failed to delete checkpoint %q: %w", stage, err)
	}
	return nil
}

// Stages lists stages with a saved checkpoint, sorted by name.
func (s *RedisStore) Stages(ctx context.Context) ([]string, error) {
	var stages []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		stages = append(stages, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	sort.Strings(stages)
	return stages, nil
}

// Close closes the client connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
