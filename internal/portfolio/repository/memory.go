package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/folio-site/folio/backend/internal/models"
	"github.com/google/uuid"
)

// MemoryRepo is a simple in-memory repository used for unit tests and
// running the API without a database.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*models.PortfolioItem
	seq   []string // insertion order, for stable sorting
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*models.PortfolioItem)}
}

func (m *MemoryRepo) Create(ctx context.Context, item *models.PortfolioItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = item.CreatedAt
	cp := *item
	m.store[item.ID] = &cp
	m.seq = append(m.seq, item.ID)
	return nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*models.PortfolioItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if it, ok := m.store[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(ctx context.Context, opts ListOptions) ([]*models.PortfolioItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := strings.ToLower(opts.Search)
	out := make([]*models.PortfolioItem, 0, len(m.store))
	for _, id := range m.seq {
		it, ok := m.store[id]
		if !ok {
			continue
		}
		if opts.Type != "" && it.Type != opts.Type {
			continue
		}
		if opts.FeaturedOnly && !it.IsFeatured {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(it.Title), needle) &&
			!strings.Contains(strings.ToLower(it.Description), needle) {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	if opts.SortBy == SortByTitle {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	} else {
		// seq is oldest-first; reverse for newest-first
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (m *MemoryRepo) Update(ctx context.Context, id string, p Patch) (*models.PortfolioItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Link != nil {
		it.Link = *p.Link
	}
	if p.Type != nil {
		it.Type = *p.Type
	}
	if p.IsFeatured != nil {
		it.IsFeatured = *p.IsFeatured
	}
	if p.Image != nil {
		it.Image = *p.Image
	}
	it.UpdatedAt = time.Now().UTC()
	cp := *it
	return &cp, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) (*models.PortfolioItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.store, id)
	for i, sid := range m.seq {
		if sid == id {
			m.seq = append(m.seq[:i], m.seq[i+1:]...)
			break
		}
	}
	return it, nil
}
