package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pageza/harvestplan/backend/internal/produce"
	"github.com/redis/go-redis/v9"
)

// DefaultHistoryCap bounds how many suggestions are remembered per household.
const DefaultHistoryCap = 50

// RedisHistoryStore keeps each household's history in a Redis list, newest
// entry at the head.
type RedisHistoryStore struct {
	redis     *redis.Client
	keyPrefix string
	cap       int64
}

func NewRedisHistoryStore(client *redis.Client, capacity int) *RedisHistoryStore {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &RedisHistoryStore{redis: client, keyPrefix: "suggestion_history", cap: int64(capacity)}
}

func (s *RedisHistoryStore) key(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, userID)
}

func (s *RedisHistoryStore) Record(ctx context.Context, userID uuid.UUID, entries ...produce.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	values := make([]interface{}, len(entries))
	for i, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode history entry: %w", err)
		}
		values[i] = b
	}

	key := s.key(userID)
	pipe := s.redis.TxPipeline()
	pipe.LPush(ctx, key, values...)
	pipe.LTrim(ctx, key, 0, s.cap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

func (s *RedisHistoryStore) Recent(ctx context.Context, userID uuid.UUID, n int) ([]produce.HistoryEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := s.redis.LRange(ctx, s.key(userID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	out := make([]produce.HistoryEntry, 0, len(raw))
	// The list is newest first; callers want oldest first
	for i := len(raw) - 1; i >= 0; i-- {
		var e produce.HistoryEntry
		if err := json.Unmarshal([]byte(raw[i]), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// MemoryHistoryStore is a process-local HistoryStore, used when Redis is not
// configured and in tests.
type MemoryHistoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]produce.HistoryEntry
	cap     int
}

func NewMemoryHistoryStore(capacity int) *MemoryHistoryStore {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &MemoryHistoryStore{entries: map[uuid.UUID][]produce.HistoryEntry{}, cap: capacity}
}

func (s *MemoryHistoryStore) Record(_ context.Context, userID uuid.UUID, entries ...produce.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := append(s.entries[userID], entries...)
	if len(h) > s.cap {
		h = append([]produce.HistoryEntry(nil), h[len(h)-s.cap:]...)
	}
	s.entries[userID] = h
	return nil
}

func (s *MemoryHistoryStore) Recent(_ context.Context, userID uuid.UUID, n int) ([]produce.HistoryEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.entries[userID]
	if n < len(h) {
		h = h[len(h)-n:]
	}
	return append([]produce.HistoryEntry(nil), h...), nil
}
