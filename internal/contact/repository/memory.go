package repository

import (
	"context"
	"sync"
	"time"

	"github.com/folio-site/folio/backend/internal/models"
	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*models.ContactMessage
	seq   []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*models.ContactMessage)}
}

func (r *MemoryRepo) Create(ctx context.Context, m *models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	cp := *m
	r.store[m.ID] = &cp
	r.seq = append(r.seq, m.ID)
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (*models.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]*models.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.ContactMessage, 0, len(r.seq))
	for i := len(r.seq) - 1; i >= 0; i-- {
		cp := *r.store[r.seq[i]]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryRepo) MarkRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	m.IsRead = true
	cp := *m
	return &cp, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[id]; !ok {
		return ErrNotFound
	}
	delete(r.store, id)
	for i, sid := range r.seq {
		if sid == id {
			r.seq = append(r.seq[:i], r.seq[i+1:]...)
			break
		}
	}
	return nil
}
