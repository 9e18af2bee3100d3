package db

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memStore struct {
	mu   sync.RWMutex
	byID map[int64]Record
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[int64]Record)}
}

func (m *memStore) Get(ctx context.Context, postID int64) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byID[postID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

func (m *memStore) Put(ctx context.Context, r Record) error {
	if r.ExportedAt.IsZero() {
		r.ExportedAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[r.PostID] = r
	return nil
}

func (m *memStore) List(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.byID))
	for _, r := range m.byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostID < out[j].PostID })
	return out, nil
}

func (m *memStore) Close() error { return nil }
