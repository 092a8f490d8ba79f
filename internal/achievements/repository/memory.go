package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/folio-site/folio/backend/internal/models"
	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*models.Achievement
	seq   []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*models.Achievement)}
}

func clone(a *models.Achievement) *models.Achievement {
	cp := *a
	cp.Items = make([]string, len(a.Items))
	copy(cp.Items, a.Items)
	return &cp
}

func (m *MemoryRepo) Create(ctx context.Context, a *models.Achievement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.store[a.ID] = clone(a)
	m.seq = append(m.seq, a.ID)
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*models.Achievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(a), nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*models.Achievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Achievement, 0, len(m.seq))
	for _, id := range m.seq {
		out = append(out, clone(m.store[id]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (m *MemoryRepo) Replace(ctx context.Context, id string, year int, items []string) (*models.Achievement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Year = year
	a.Items = append([]string{}, items...)
	a.UpdatedAt = time.Now().UTC()
	return clone(a), nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	for i, sid := range m.seq {
		if sid == id {
			m.seq = append(m.seq[:i], m.seq[i+1:]...)
			break
		}
	}
	return nil
}
