package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forgemart/forgemart/internal/shared"
)

// IdentityStore looks up stored identities for authentication.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	FindByID(ctx context.Context, id int64) (*Identity, error)
}

// Repository provides PostgreSQL backed identity lookups over the users table.
type Repository struct {
	pool *pgxpool.Pool
}

var _ IdentityStore = (*Repository)(nil)

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByEmail returns the identity registered under the given email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	return r.find(ctx, `SELECT id, email, password_hash, role FROM users WHERE email = $1`, email)
}

// FindByID returns the identity with the given id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Identity, error) {
	return r.find(ctx, `SELECT id, email, password_hash, role FROM users WHERE id = $1`, id)
}

func (r *Repository) find(ctx context.Context, query string, arg any) (*Identity, error) {
	var identity Identity
	err := r.pool.QueryRow(ctx, query, arg).Scan(&identity.ID, &identity.Email, &identity.PasswordHash, &identity.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}
