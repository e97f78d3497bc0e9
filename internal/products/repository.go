package products

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forgemart/forgemart/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, name string) ([]Product, error)
	FilterByPrice(ctx context.Context, minPrice, maxPrice float64) ([]Product, error)
	Available(ctx context.Context) ([]Product, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, price, stock_quantity, kind, category_id`

func (r *repository) List(ctx context.Context) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.Kind, &p.CategoryID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (name, description, price, stock_quantity, kind, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		product.Name, product.Description, product.Price, product.StockQuantity, product.Kind, product.CategoryID,
	).Scan(&product.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Product{}, shared.ErrDuplicate
		}
		return Product{}, err
	}
	return product, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SearchByName(ctx context.Context, name string) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE name ILIKE $1 ORDER BY name`, "%"+name+"%")
}

func (r *repository) FilterByPrice(ctx context.Context, minPrice, maxPrice float64) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE price BETWEEN $1 AND $2 ORDER BY price`, minPrice, maxPrice)
}

func (r *repository) Available(ctx context.Context) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE stock_quantity > 0 ORDER BY id`)
}

func (r *repository) query(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.Kind, &p.CategoryID); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
