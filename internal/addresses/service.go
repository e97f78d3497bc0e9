package addresses

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgemart/forgemart/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create attaches an address to a user. One address per user.
func (s *Service) Create(ctx context.Context, address Address) (Address, error) {
	address.Street = strings.TrimSpace(address.Street)
	address.City = strings.TrimSpace(address.City)
	address.ZipCode = strings.TrimSpace(address.ZipCode)
	if address.Street == "" || address.City == "" || address.ZipCode == "" {
		return Address{}, fmt.Errorf("%w: street, city and zip_code are required", shared.ErrValidation)
	}
	return s.repo.Create(ctx, address)
}

func (s *Service) GetByUser(ctx context.Context, userID int64) (Address, error) {
	if userID <= 0 {
		return Address{}, shared.ErrNotFound
	}
	return s.repo.GetByUser(ctx, userID)
}
