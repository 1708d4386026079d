package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	data    []byte
	expires time.Time
}

// Memory is an in-process Cache used when Redis is not configured.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]map[string]entry
	gens    map[string]Generation
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]map[string]entry),
		gens:    make(map[string]Generation),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, namespace, key string, dest any) (Generation, bool, error) {
	m.mu.Lock()
	gen := m.gens[namespace]
	e, ok := m.entries[namespace][key]
	if ok && m.now().After(e.expires) {
		delete(m.entries[namespace], key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return gen, false, nil
	}
	return gen, true, json.Unmarshal(e.data, dest)
}

func (m *Memory) Set(_ context.Context, namespace string, gen Generation, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gens[namespace] {
		return nil
	}
	if m.entries[namespace] == nil {
		m.entries[namespace] = make(map[string]entry)
	}
	m.entries[namespace][key] = entry{data: data, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gens[namespace]++
	delete(m.entries, namespace)
	return nil
}
