package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio-site/folio/backend/internal/models"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"golang.org/x/crypto/bcrypt"
)

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
	cost int
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r, cost: bcrypt.DefaultCost}
}

// Authenticate checks username/password against the stored hash. Unknown
// users and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apierror.New(apierror.ErrInvalidCredentials, "Invalid credentials")
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return nil, apierror.New(apierror.ErrInvalidCredentials, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apierror.New(apierror.ErrInvalidCredentials, "Invalid credentials")
	}
	return u, nil
}

// Provision creates the admin user or resets its password.
func (s *Service) Provision(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apierror.New(apierror.ErrValidation, "username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpsertByUsername(ctx, &models.User{Username: username, PasswordHash: string(hash)})
}

// GetByID returns the user or a not-found error.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apierror.New(apierror.ErrNotFound, "User not found")
	}
	return u, nil
}
