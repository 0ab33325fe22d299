// internal/cache/memory.go
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryStore is an in-process Store for tests and single-node
// development runs. Production deployments use the Redis client.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
	counter   bool
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// GetJSON implements Store
func (m *MemoryStore) GetJSON(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.live(key)
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(entry.data, dest)
}

// SetJSON implements Store
func (m *MemoryStore) SetJSON(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}
	m.entries[key] = memoryEntry{data: data, expiresAt: expiresAt}
	return nil
}

// Del implements Store
func (m *MemoryStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

// Incr implements Store
func (m *MemoryStore) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current int64
	if entry, ok := m.live(key); ok {
		current, _ = strconv.ParseInt(string(entry.data), 10, 64)
	}
	current++
	m.entries[key] = memoryEntry{data: []byte(strconv.FormatInt(current, 10)), counter: true}
	return current, nil
}

// GetInt implements Store
func (m *MemoryStore) GetInt(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.live(key)
	if !ok {
		return 0, redis.Nil
	}
	return strconv.ParseInt(string(entry.data), 10, 64)
}

func (m *MemoryStore) live(key string) (memoryEntry, bool) {
	entry, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}
