package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, name string) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name
`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, q, name).Scan(&c.ID, &c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const q = `SELECT id, name FROM categories WHERE id = $1`

	var c domain.Category
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(domain.EntityCategory)
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `SELECT id, name FROM categories ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
