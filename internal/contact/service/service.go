package service

import (
	"context"
	"errors"
	"strings"

	"github.com/folio-site/folio/backend/internal/contact/repository"
	"github.com/folio-site/folio/backend/internal/models"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/folio-site/folio/backend/pkg/logger"
	"github.com/folio-site/folio/backend/pkg/metrics"
	"github.com/folio-site/folio/backend/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// SubmitInput is a visitor's form submission. Email is accepted as typed.
type SubmitInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

type Service struct {
	repo     repository.Repository
	validate *validator.Validate
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo, validate: validation.New()}
}

// Submit stores a new unread message.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := validation.Struct(s.validate, in); err != nil {
		return nil, err
	}
	m := &models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	logger.Infof("contact: new message %s", m.ID)
	metrics.ContentMutations.WithLabelValues("contact", "create").Inc()
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]*models.ContactMessage, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.ContactMessage, error) {
	m, err := s.repo.Get(ctx, id)
	return m, mapRepoErr(err)
}

// MarkRead is idempotent; there is no way back to unread.
func (s *Service) MarkRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	m, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	metrics.ContentMutations.WithLabelValues("contact", "read").Inc()
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	metrics.ContentMutations.WithLabelValues("contact", "delete").Inc()
	return nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.New(apierror.ErrNotFound, "Message not found")
	}
	return err
}
