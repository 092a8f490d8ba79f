package repository

import (
	"context"
	"errors"

	"github.com/folio-site/folio/backend/internal/models"
)

var ErrNotFound = errors.New("achievement not found")

// Repository persists achievements. List is ordered by year, newest first;
// equal years keep creation order.
type Repository interface {
	List(ctx context.Context) ([]*models.Achievement, error)
	Get(ctx context.Context, id string) (*models.Achievement, error)
	Create(ctx context.Context, a *models.Achievement) error
	Replace(ctx context.Context, id string, year int, items []string) (*models.Achievement, error)
	Delete(ctx context.Context, id string) error
}
