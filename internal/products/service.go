package products

import (
	"context"
	"fmt"

	"github.com/forgemart/forgemart/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, product)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]Product, error) {
	return s.repo.SearchByName(ctx, name)
}

func (s *Service) FilterByPrice(ctx context.Context, minPrice, maxPrice float64) ([]Product, error) {
	if minPrice < 0 || maxPrice < minPrice {
		return nil, fmt.Errorf("%w: invalid price range", shared.ErrValidation)
	}
	return s.repo.FilterByPrice(ctx, minPrice, maxPrice)
}

func (s *Service) Available(ctx context.Context) ([]Product, error) {
	return s.repo.Available(ctx)
}

func (s *Service) validate(product Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	if product.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", shared.ErrValidation)
	}
	if product.StockQuantity < 0 {
		return fmt.Errorf("%w: stock cannot be negative", shared.ErrValidation)
	}
	if !product.Kind.Valid() {
		return fmt.Errorf("%w: kind must be component or tool", shared.ErrValidation)
	}
	if product.CategoryID <= 0 {
		return fmt.Errorf("%w: category is required", shared.ErrValidation)
	}
	return nil
}
