package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/folio-site/folio/backend/internal/models"
	"github.com/folio-site/folio/backend/internal/portfolio/repository"
	"github.com/folio-site/folio/backend/internal/storage"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/folio-site/folio/backend/pkg/logger"
	"github.com/folio-site/folio/backend/pkg/metrics"
	"github.com/folio-site/folio/backend/pkg/validation"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted image upload.
const MaxImageSize int64 = 5 << 20

const (
	msgTooLarge  = "File is too large. Maximum size is 5MB."
	msgNotImage  = "Only image files are allowed!"
	msgNotFound  = "Portfolio item not found"
	imagesPrefix = "portfolio"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}

// Upload is an image attached to a create or update request.
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// CreateInput carries the fields of a new item.
type CreateInput struct {
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description" validate:"required"`
	Type        models.PortfolioType `json:"type" validate:"required,oneof=web mobile design"`
	Link        string               `json:"link"`
	IsFeatured  bool                 `json:"isFeatured"`
}

// UpdateInput carries the fields to replace; nil fields are left unchanged.
type UpdateInput struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Type        *models.PortfolioType `json:"type" validate:"omitempty,oneof=web mobile design"`
	Link        *string               `json:"link"`
	IsFeatured  *bool                 `json:"isFeatured"`
}

type Service struct {
	repo     repository.Repository
	store    storage.ObjectStorage
	validate *validator.Validate
	now      func() time.Time
}

func New(repo repository.Repository, store storage.ObjectStorage) *Service {
	return &Service{repo: repo, store: store, validate: validation.New(), now: time.Now}
}

func (s *Service) List(ctx context.Context, opts repository.ListOptions) ([]*models.PortfolioItem, error) {
	return s.repo.List(ctx, opts)
}

func (s *Service) Get(ctx context.Context, id string) (*models.PortfolioItem, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return it, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput, file *Upload) (*models.PortfolioItem, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(s.validate, in); err != nil {
		return nil, err
	}
	item := &models.PortfolioItem{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Link:        in.Link,
		IsFeatured:  in.IsFeatured,
	}
	if file != nil {
		p, err := s.storeImage(ctx, file)
		if err != nil {
			return nil, err
		}
		item.Image = p
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.removeImage(ctx, item.Image)
		return nil, err
	}
	metrics.ContentMutations.WithLabelValues("portfolio", "create").Inc()
	return item, nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput, file *Upload) (*models.PortfolioItem, error) {
	in.Title = trimmed(in.Title)
	in.Description = trimmed(in.Description)
	// empty strings are explicitly provided values and must still fail
	if in.Title != nil && *in.Title == "" {
		return nil, apierror.New(apierror.ErrValidation, "title is required")
	}
	if in.Description != nil && *in.Description == "" {
		return nil, apierror.New(apierror.ErrValidation, "description is required")
	}
	if in.Type != nil && !in.Type.Valid() {
		return nil, apierror.New(apierror.ErrValidation, "type must be one of: web, mobile, design")
	}
	if err := validation.Struct(s.validate, in); err != nil {
		return nil, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	patch := repository.Patch{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Link:        in.Link,
		IsFeatured:  in.IsFeatured,
	}
	if file != nil {
		p, err := s.storeImage(ctx, file)
		if err != nil {
			return nil, err
		}
		patch.Image = &p
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if patch.Image != nil {
			s.removeImage(ctx, *patch.Image)
		}
		return nil, mapRepoErr(err)
	}
	if patch.Image != nil && existing.Image != "" && existing.Image != *patch.Image {
		s.removeImage(ctx, existing.Image)
	}
	metrics.ContentMutations.WithLabelValues("portfolio", "update").Inc()
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	it, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapRepoErr(err)
	}
	s.removeImage(ctx, it.Image)
	metrics.ContentMutations.WithLabelValues("portfolio", "delete").Inc()
	return nil
}

// CheckUpload applies the image size and extension rules.
func CheckUpload(f *Upload) error {
	if f.Size > MaxImageSize {
		metrics.UploadsRejected.WithLabelValues("size").Inc()
		return apierror.New(apierror.ErrUpload, msgTooLarge)
	}
	if !imageExts[strings.ToLower(path.Ext(f.Filename))] {
		metrics.UploadsRejected.WithLabelValues("type").Inc()
		return apierror.New(apierror.ErrUpload, msgNotImage)
	}
	return nil
}

func (s *Service) storeImage(ctx context.Context, f *Upload) (string, error) {
	if err := CheckUpload(f); err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(f.Filename))
	key := fmt.Sprintf("%s/%d-%s%s", imagesPrefix, s.now().UnixMilli(), uuid.NewString()[:8], ext)
	// cap the reader in case Size understated the body
	body := io.LimitReader(f.Body, MaxImageSize+1)
	if err := s.store.Save(ctx, key, body, f.Size, f.ContentType); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return storage.PublicPath(key), nil
}

// removeImage deletes a previously stored image. Failures are logged only;
// the record change has already happened.
func (s *Service) removeImage(ctx context.Context, publicPath string) {
	key, ok := storage.KeyFromPublicPath(publicPath)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		logger.Warnf("portfolio: failed to remove image %s: %v", key, err)
	}
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.New(apierror.ErrNotFound, msgNotFound)
	}
	return err
}
