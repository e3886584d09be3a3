package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	"github.com/alejandrorivera22/ecom-cart/internal/repository/product"
)

// sortColumns maps exposed order sort fields to actual columns. Anything
// else falls back to id ordering.
var sortColumns = map[string]string{
	"customer":   "customer_id",
	"totalPrice": "total_price",
}

// lineSortColumns does the same for order lines.
var lineSortColumns = map[string]string{
	"product": "product_id",
	"order":   "order_id",
	"price":   "unit_price",
}

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

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	total := decimal.Zero
	reservations := make([]*domain.StockReservation, 0, len(in.Lines))
	for _, line := range in.Lines {
		res, err := product.ReserveStock(ctx, tx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
		total = total.Add(res.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	const orderQ = `
INSERT INTO orders (customer_id, status, total_price)
VALUES ($1, $2, $3)
RETURNING id, customer_id, status, total_price, created_at
`
	var o domain.Order
	err = tx.QueryRow(ctx, orderQ, in.CustomerID, domain.StatusPending, total).
		Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalPrice, &o.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.NotFound(domain.EntityCustomer)
		}
		r.logger.Printf("order repo: create error=%v", err)
		return nil, err
	}

	const lineQ = `
INSERT INTO order_lines (order_id, product_id, product_name, unit_price, quantity)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at
`
	for i, line := range in.Lines {
		res := reservations[i]
		ol := domain.OrderLine{
			OrderID:     o.ID,
			ProductID:   res.ProductID,
			ProductName: res.ProductName,
			UnitPrice:   res.UnitPrice,
			Quantity:    line.Quantity,
		}
		if err := tx.QueryRow(ctx, lineQ, o.ID, ol.ProductID, ol.ProductName, ol.UnitPrice, ol.Quantity).Scan(&ol.ID, &ol.CreatedAt); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, ol)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `
SELECT id, customer_id, status, total_price, created_at
FROM orders
WHERE id = $1
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalPrice, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(domain.EntityOrder)
		}
		return nil, err
	}
	if o.Lines, err = r.ListLinesByOrder(ctx, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) List(ctx context.Context, in ListInput) ([]domain.Order, int64, error) {
	col, ok := sortColumns[in.SortBy]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if in.Desc {
		dir = "DESC"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`
SELECT id, customer_id, status, total_price, created_at
FROM orders
ORDER BY %s %s
LIMIT $1 OFFSET $2
`, col, dir)
	rows, err := r.pool.Query(ctx, q, in.Size, in.Page*in.Size)
	if err != nil {
		return nil, 0, err
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	const q = `
SELECT id, customer_id, status, total_price, created_at
FROM orders
WHERE customer_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, expected, next domain.OrderStatus) (bool, error) {
	const q = `UPDATE orders SET status = $3 WHERE id = $1 AND status = $2`

	tag, err := r.pool.Exec(ctx, q, id, expected, next)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *postgresRepo) ListLines(ctx context.Context, in ListInput) ([]domain.OrderLine, int64, error) {
	col, ok := lineSortColumns[in.SortBy]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if in.Desc {
		dir = "DESC"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM order_lines`).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`
SELECT id, order_id, product_id, product_name, unit_price, quantity, created_at
FROM order_lines
ORDER BY %s %s
LIMIT $1 OFFSET $2
`, col, dir)
	rows, err := r.pool.Query(ctx, q, in.Size, in.Page*in.Size)
	if err != nil {
		return nil, 0, err
	}
	lines, err := collectLines(rows)
	if err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}

func (r *postgresRepo) ListLinesByOrder(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	const q = `
SELECT id, order_id, product_id, product_name, unit_price, quantity, created_at
FROM order_lines
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	return collectLines(rows)
}

func (r *postgresRepo) ListLinesByProduct(ctx context.Context, productID int64) ([]domain.OrderLine, error) {
	const q = `
SELECT id, order_id, product_id, product_name, unit_price, quantity, created_at
FROM order_lines
WHERE product_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	return collectLines(rows)
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalPrice, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func collectLines(rows pgx.Rows) ([]domain.OrderLine, error) {
	defer rows.Close()

	var result []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
