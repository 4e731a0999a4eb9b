package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Menova10/menova-empower-journey/internal/domain"
)

// Memory is an in-process SourceCache, used when Redis is not configured.
type Memory struct {
	mu      sync.RWMutex
	entries map[domain.Source]domain.CachedSource
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[domain.Source]domain.CachedSource), now: time.Now}
}

func (m *Memory) Get(_ context.Context, source domain.Source) (*domain.CachedSource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[source]
	if !ok {
		return nil, nil
	}
	entry.Items = append([]domain.ContentItem(nil), entry.Items...)
	return &entry, nil
}

func (m *Memory) Set(_ context.Context, source domain.Source, items []domain.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[source] = domain.CachedSource{
		Source:    source,
		Items:     append([]domain.ContentItem(nil), items...),
		FetchedAt: m.now().UTC(),
	}
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}
