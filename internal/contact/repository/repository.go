package repository

import (
	"context"
	"errors"

	"github.com/folio-site/folio/backend/internal/models"
)

var ErrNotFound = errors.New("contact message not found")

// Repository persists contact messages, newest first.
type Repository interface {
	List(ctx context.Context) ([]*models.ContactMessage, error)
	Get(ctx context.Context, id string) (*models.ContactMessage, error)
	Create(ctx context.Context, m *models.ContactMessage) error
	MarkRead(ctx context.Context, id string) (*models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}
