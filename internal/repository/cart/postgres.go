package cart

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) CreateForCustomer(ctx context.Context, customerID int64) (*domain.Cart, error) {
	existing, err := r.GetByCustomerID(ctx, customerID)
	if err == nil {
		return existing, nil
	}
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		return nil, err
	}

	const q = `
INSERT INTO carts (customer_id)
VALUES ($1)
RETURNING id, customer_id, created_at
`
	var c domain.Cart
	err = r.pool.QueryRow(ctx, q, customerID).Scan(&c.ID, &c.CustomerID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.NotFound(domain.EntityCustomer)
		}
		r.logger.Printf("cart repo: create error=%v", err)
		return nil, err
	}
	c.Lines = []domain.CartLine{}
	return &c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Cart, error) {
	const q = `SELECT id, customer_id, created_at FROM carts WHERE id = $1`

	var c domain.Cart
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.CustomerID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(domain.EntityCart)
		}
		return nil, err
	}
	if c.Lines, err = r.loadLines(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) GetByCustomerID(ctx context.Context, customerID int64) (*domain.Cart, error) {
	const q = `
SELECT id, customer_id, created_at
FROM carts
WHERE customer_id = $1
ORDER BY id ASC
LIMIT 1
`
	var c domain.Cart
	err := r.pool.QueryRow(ctx, q, customerID).Scan(&c.ID, &c.CustomerID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(domain.EntityCart)
		}
		return nil, err
	}
	if c.Lines, err = r.loadLines(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) UpsertLine(ctx context.Context, cartID, productID int64, quantity int) error {
	const q = `
INSERT INTO cart_lines (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, cartID, productID, quantity)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			if pgErr.ConstraintName == "cart_lines_product_id_fkey" {
				return domain.NotFound(domain.EntityProduct)
			}
			return domain.NotFound(domain.EntityCart)
		}
		r.logger.Printf("cart repo: upsert line error=%v", err)
		return err
	}
	return nil
}

func (r *postgresRepo) RemoveLine(ctx context.Context, cartID, productID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	return err
}

func (r *postgresRepo) Clear(ctx context.Context, cartID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID)
	return err
}

func (r *postgresRepo) loadLines(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	const q = `
SELECT cl.product_id, p.name, p.price, cl.quantity
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.cart_id = $1
ORDER BY cl.product_id ASC
`
	rows, err := r.pool.Query(ctx, q, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Price, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
