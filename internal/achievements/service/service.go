package service

import (
	"context"
	"errors"

	"github.com/folio-site/folio/backend/internal/achievements/repository"
	"github.com/folio-site/folio/backend/internal/models"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/folio-site/folio/backend/pkg/metrics"
	"github.com/folio-site/folio/backend/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// Input is the full body of a create or update. Items may be empty; only
// its presence is checked.
type Input struct {
	Year  *int     `json:"year" validate:"required"`
	Items []string `json:"items" validate:"required"`
}

type Service struct {
	repo     repository.Repository
	validate *validator.Validate
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo, validate: validation.New()}
}

func (s *Service) List(ctx context.Context) ([]*models.Achievement, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Achievement, error) {
	a, err := s.repo.Get(ctx, id)
	return a, mapRepoErr(err)
}

func (s *Service) Create(ctx context.Context, in Input) (*models.Achievement, error) {
	if err := validation.Struct(s.validate, in); err != nil {
		return nil, err
	}
	a := &models.Achievement{Year: *in.Year, Items: in.Items}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	metrics.ContentMutations.WithLabelValues("achievement", "create").Inc()
	return a, nil
}

// Update replaces both year and items.
func (s *Service) Update(ctx context.Context, id string, in Input) (*models.Achievement, error) {
	if err := validation.Struct(s.validate, in); err != nil {
		return nil, err
	}
	a, err := s.repo.Replace(ctx, id, *in.Year, in.Items)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	metrics.ContentMutations.WithLabelValues("achievement", "update").Inc()
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	metrics.ContentMutations.WithLabelValues("achievement", "delete").Inc()
	return nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.New(apierror.ErrNotFound, "Achievement not found")
	}
	return err
}
