package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Cache. It is the fallback when no Redis address
// is configured and the implementation used by tests.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: map[string]memoryEntry{}}
}

func (m *Memory) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if ok && time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Put(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{raw: raw, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Evict(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) EvictPrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()
	return nil
}
