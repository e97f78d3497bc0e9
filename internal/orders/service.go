package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forgemart/forgemart/internal/addresses"
	"github.com/forgemart/forgemart/internal/products"
	"github.com/forgemart/forgemart/internal/shared"
	"github.com/forgemart/forgemart/internal/shipping"
	"github.com/forgemart/forgemart/internal/users"
)

// UserGetter resolves an account by id.
type UserGetter interface {
	Get(ctx context.Context, id int64) (users.User, error)
}

// ProductGetter resolves a catalog entry by id.
type ProductGetter interface {
	Get(ctx context.Context, id int64) (products.Product, error)
}

// AddressGetter resolves the delivery address of a user.
type AddressGetter interface {
	GetByUser(ctx context.Context, userID int64) (addresses.Address, error)
}

// Service coordinates order placement and queries.
type Service struct {
	repo      Repository
	users     UserGetter
	products  ProductGetter
	addresses AddressGetter
	shipping  shipping.Estimator
}

// NewService constructs a new Service.
func NewService(repo Repository, users UserGetter, products ProductGetter, addresses AddressGetter, estimator shipping.Estimator) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		products:  products,
		addresses: addresses,
		shipping:  estimator,
	}
}

// Create places an order: snapshots current unit prices, sums the total and
// adds the shipping estimate when the buyer has a delivery address on file.
func (s *Service) Create(ctx context.Context, input CreateOrderInput) (Order, error) {
	user, err := s.users.Get(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Order{}, fmt.Errorf("%w: user %d", shared.ErrNotFound, input.UserID)
		}
		return Order{}, err
	}

	order := Order{
		UserID:    user.ID,
		OrderDate: time.Now(),
		Status:    StatusPending,
	}

	var total float64
	for _, line := range input.Items {
		product, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return Order{}, fmt.Errorf("%w: product %d", shared.ErrNotFound, line.ProductID)
			}
			return Order{}, err
		}
		order.Items = append(order.Items, OrderItem{
			ProductID:       product.ID,
			Quantity:        line.Quantity,
			PriceAtPurchase: product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}
	order.TotalAmount = total

	if address, err := s.addresses.GetByUser(ctx, user.ID); err == nil {
		order.ShippingCost = s.shipping.Estimate(ctx, address.Street, address.City, address.ZipCode)
		order.TotalAmount = total + order.ShippingCost
	}

	return s.repo.CreateOrder(ctx, order)
}

// List returns every order.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.ListOrders(ctx)
}

// ListByUser returns the orders of one user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// ListByStatus returns orders in the given status.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]Order, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", shared.ErrValidation)
	}
	return s.repo.ListByStatus(ctx, status)
}

// TotalSpentByUser returns the lifetime spend of a user, zero when the user
// has no orders.
func (s *Service) TotalSpentByUser(ctx context.Context, userID int64) (float64, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return 0, err
	}
	return s.repo.TotalSpentByUser(ctx, userID)
}
