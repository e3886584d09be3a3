package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

// sortColumns maps exposed sort fields to actual columns. Anything else
// falls back to id ordering.
var sortColumns = map[string]string{
	"name":        "name",
	"description": "description",
	"price":       "price",
}

const selectCols = `id, name, description, price, stock, enabled, category_id, created_at`

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

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price, stock, category_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + selectCols
	p, err := scanProduct(r.pool.QueryRow(ctx, q, in.Name, in.Description, in.Price, in.Stock, in.CategoryID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.NotFound(domain.EntityCategory)
		}
		r.logger.Printf("product repo: create error=%v", err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `SELECT ` + selectCols + ` FROM products WHERE id = $1`
	return scanProduct(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) ListActive(ctx context.Context, in ListInput) ([]domain.Product, int64, error) {
	col, ok := sortColumns[in.SortBy]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if in.Desc {
		dir = "DESC"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE enabled`).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`
SELECT %s
FROM products
WHERE enabled
ORDER BY %s %s
LIMIT $1 OFFSET $2
`, selectCols, col, dir)
	rows, err := r.pool.Query(ctx, q, in.Size, in.Page*in.Size)
	if err != nil {
		return nil, 0, err
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *postgresRepo) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	const q = `
SELECT ` + selectCols + `
FROM products
WHERE category_id = $1 AND enabled
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *postgresRepo) ListDisabled(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + selectCols + `
FROM products
WHERE NOT enabled
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *postgresRepo) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2, description = $3, price = $4, category_id = $5
WHERE id = $1
RETURNING ` + selectCols
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id, in.Name, in.Description, in.Price, in.CategoryID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.NotFound(domain.EntityCategory)
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) UpdateStock(ctx context.Context, id int64, stock int) (*domain.Product, error) {
	const q = `
UPDATE products
SET stock = $2
WHERE id = $1
RETURNING ` + selectCols
	return scanProduct(r.pool.QueryRow(ctx, q, id, stock))
}

// HasReferences reports whether any order-line or cart-line points at the
// product. Referenced products are disabled instead of deleted.
func (r *postgresRepo) HasReferences(ctx context.Context, id int64) (bool, error) {
	const q = `
SELECT EXISTS (SELECT 1 FROM order_lines WHERE product_id = $1)
    OR EXISTS (SELECT 1 FROM cart_lines WHERE product_id = $1)
`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(domain.EntityProduct)
	}
	return nil
}

func (r *postgresRepo) Disable(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET enabled = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(domain.EntityProduct)
	}
	return nil
}

// ReserveStock locks one product row inside the caller's transaction,
// verifies it is enabled and sufficiently stocked, and decrements its
// stock. The returned snapshot carries the unit price at reservation time.
func ReserveStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int) (*domain.StockReservation, error) {
	const q = `
SELECT name, price, stock, enabled
FROM products
WHERE id = $1
FOR UPDATE
`
	var res domain.StockReservation
	var stock int
	var enabled bool
	err := tx.QueryRow(ctx, q, productID).Scan(&res.ProductName, &res.UnitPrice, &stock, &enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(domain.EntityProduct)
		}
		return nil, err
	}
	if !enabled {
		return nil, domain.NotEnabled(res.ProductName)
	}
	if stock < quantity {
		return nil, domain.InsufficientStock(res.ProductName)
	}

	if _, err := tx.Exec(ctx, `UPDATE products SET stock = stock - $2 WHERE id = $1`, productID, quantity); err != nil {
		return nil, err
	}
	res.ProductID = productID
	return &res, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Enabled, &p.CategoryID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(domain.EntityProduct)
		}
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Enabled, &p.CategoryID, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
