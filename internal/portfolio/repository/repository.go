package repository

import (
	"context"
	"errors"

	"github.com/folio-site/folio/backend/internal/models"
)

var (
	ErrNotFound = errors.New("portfolio item not found")
)

// SortBy selects the listing order.
type SortBy string

const (
	SortByCreated SortBy = "createdAt" // newest first
	SortByTitle   SortBy = "title"     // A→Z
)

// ListOptions narrows a listing. Zero values mean "no restriction".
type ListOptions struct {
	Type         models.PortfolioType
	Search       string
	FeaturedOnly bool
	SortBy       SortBy
}

// Patch lists the fields an update replaces; nil means unchanged.
type Patch struct {
	Title       *string
	Description *string
	Link        *string
	Type        *models.PortfolioType
	IsFeatured  *bool
	Image       *string
}

// Repository persists portfolio items. Create assigns ID and timestamps.
type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]*models.PortfolioItem, error)
	Get(ctx context.Context, id string) (*models.PortfolioItem, error)
	Create(ctx context.Context, item *models.PortfolioItem) error
	Update(ctx context.Context, id string, p Patch) (*models.PortfolioItem, error)
	// Delete removes the item and returns it so callers can clean up its image.
	Delete(ctx context.Context, id string) (*models.PortfolioItem, error)
}
