package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgemart/forgemart/internal/shared"
)

type mockRepo struct {
	products map[int64]Product
	nextID   int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{products: make(map[int64]Product)}
}

func (m *mockRepo) List(context.Context) ([]Product, error) {
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepo) Get(_ context.Context, id int64) (Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return Product{}, shared.ErrNotFound
}

func (m *mockRepo) Create(_ context.Context, product Product) (Product, error) {
	m.nextID++
	product.ID = m.nextID
	m.products[product.ID] = product
	return product, nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockRepo) SearchByName(_ context.Context, name string) ([]Product, error) {
	return nil, nil
}

func (m *mockRepo) FilterByPrice(_ context.Context, minPrice, maxPrice float64) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if p.Price >= minPrice && p.Price <= maxPrice {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) Available(context.Context) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if p.StockQuantity > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func validProduct() Product {
	return Product{
		Name:          "Claw Hammer",
		Description:   "16oz steel claw hammer",
		Price:         14.90,
		StockQuantity: 50,
		Kind:          KindTool,
		CategoryID:    1,
	}
}

func TestCreateValidProduct(t *testing.T) {
	service := NewService(newMockRepo())

	created, err := service.Create(context.Background(), validProduct())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestCreateValidation(t *testing.T) {
	service := NewService(newMockRepo())

	cases := map[string]func(*Product){
		"empty name":       func(p *Product) { p.Name = "" },
		"zero price":       func(p *Product) { p.Price = 0 },
		"negative price":   func(p *Product) { p.Price = -1 },
		"negative stock":   func(p *Product) { p.StockQuantity = -1 },
		"unknown kind":     func(p *Product) { p.Kind = "gadget" },
		"missing category": func(p *Product) { p.CategoryID = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProduct()
			mutate(&p)
			_, err := service.Create(context.Background(), p)
			assert.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestFilterByPriceRange(t *testing.T) {
	service := NewService(newMockRepo())

	_, err := service.FilterByPrice(context.Background(), 10, 5)
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = service.FilterByPrice(context.Background(), -1, 5)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestAvailableExcludesOutOfStock(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)

	inStock := validProduct()
	outOfStock := validProduct()
	outOfStock.Name = "Wire Stripper"
	outOfStock.StockQuantity = 0

	_, err := service.Create(context.Background(), inStock)
	require.NoError(t, err)
	_, err = service.Create(context.Background(), outOfStock)
	require.NoError(t, err)

	available, err := service.Available(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Claw Hammer", available[0].Name)
}
