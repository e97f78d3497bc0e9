package addresses

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forgemart/forgemart/internal/shared"
)

type Repository interface {
	Create(ctx context.Context, address Address) (Address, error)
	GetByUser(ctx context.Context, userID int64) (Address, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, address Address) (Address, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO addresses (user_id, street, city, zip_code) VALUES ($1, $2, $3, $4) RETURNING id`,
		address.UserID, address.Street, address.City, address.ZipCode,
	).Scan(&address.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// 23505: the user already has an address; 23503: no such user.
			switch pgErr.Code {
			case "23505":
				return Address{}, shared.ErrDuplicate
			case "23503":
				return Address{}, shared.ErrNotFound
			}
		}
		return Address{}, err
	}
	return address, nil
}

func (r *repository) GetByUser(ctx context.Context, userID int64) (Address, error) {
	var a Address
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, street, city, zip_code FROM addresses WHERE user_id = $1`, userID,
	).Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.ZipCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return Address{}, shared.ErrNotFound
	}
	return a, err
}
