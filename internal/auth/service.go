package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgemart/forgemart/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	store IdentityStore
	codec *TokenCodec
}

// NewService constructs a new Service.
func NewService(store IdentityStore, codec *TokenCodec) *Service {
	return &Service{store: store, codec: codec}
}

// Login validates email/password credentials and issues a bearer token.
// Unknown email and wrong password both return ErrInvalidCredentials. One
// hash comparison per call, never retried here.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	identity, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return "", shared.ErrInvalidCredentials
	}
	return s.codec.Issue(identity.ID)
}
