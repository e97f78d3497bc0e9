package users

import (
	"context"
	"errors"
	"io"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgemart/forgemart/internal/auth"
	"github.com/forgemart/forgemart/internal/shared"
	"github.com/forgemart/forgemart/internal/storage"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Service wraps user account business rules.
type Service struct {
	repo   Repository
	images storage.ImageStore
}

// NewService constructs a new Service.
func NewService(repo Repository, images storage.ImageStore) *Service {
	return &Service{repo: repo, images: images}
}

// Register creates an account with the given role, hashing the password
// before it ever reaches the store.
func (s *Service) Register(ctx context.Context, input RegisterInput, role auth.Role) (User, error) {
	if !role.Valid() {
		return User{}, errors.New("users: unknown role")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	user := User{
		Username:         input.Username,
		Email:            input.Email,
		PasswordHash:     string(hash),
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		RegistrationDate: time.Now(),
		Role:             role,
	}
	return s.repo.Create(ctx, user)
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get returns a single account.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// SetProfileImage uploads the image to the external store and persists the
// resulting URL on the account.
func (s *Service) SetProfileImage(ctx context.Context, id int64, filename string, content io.Reader) (User, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return User{}, err
	}
	url, err := s.images.Upload(ctx, filename, content)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.UpdateProfileImage(ctx, id, url); err != nil {
		return User{}, err
	}
	return s.repo.Get(ctx, id)
}
