package customer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

// sortColumns maps exposed sort fields to actual columns. Anything else
// falls back to id ordering.
var sortColumns = map[string]string{
	"username": "username",
	"email":    "email",
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

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO customers (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, username, email, password_hash, enabled, created_at
`
	var c domain.Customer
	err = tx.QueryRow(ctx, q, in.Username, strings.ToLower(in.Email), in.PasswordHash).
		Scan(&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.Enabled, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.InvalidArgumentf("username or email already in use")
		}
		r.logger.Printf("customer repo: create error=%v", err)
		return nil, err
	}

	const roleQ = `
INSERT INTO customer_roles (customer_id, role_id)
SELECT $1, id FROM roles WHERE name = $2
`
	if _, err := tx.Exec(ctx, roleQ, c.ID, domain.RoleCustomer); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	c.Roles = []string{domain.RoleCustomer}
	return &c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `
SELECT id, username, email, password_hash, enabled, created_at
FROM customers
WHERE id = $1
`
	return r.scanCustomer(ctx, r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	const q = `
SELECT id, username, email, password_hash, enabled, created_at
FROM customers
WHERE username = $1
`
	return r.scanCustomer(ctx, r.pool.QueryRow(ctx, q, username))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
SELECT id, username, email, password_hash, enabled, created_at
FROM customers
WHERE lower(email) = lower($1)
`
	return r.scanCustomer(ctx, r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE username = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE lower(email) = lower($1))`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET username = $2, email = $3, password_hash = $4
WHERE id = $1
RETURNING id, username, email, password_hash, enabled, created_at
`
	c, err := r.scanCustomer(ctx, r.pool.QueryRow(ctx, q, id, in.Username, strings.ToLower(in.Email), in.PasswordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.InvalidArgumentf("username or email already in use")
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) AddRole(ctx context.Context, customerID int64, roleName string) error {
	const q = `
INSERT INTO customer_roles (customer_id, role_id)
SELECT $1, id FROM roles WHERE name = $2
ON CONFLICT DO NOTHING
`
	tag, err := r.pool.Exec(ctx, q, customerID, roleName)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.NotFound(domain.EntityCustomer)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either the role name does not exist or the assignment is already
		// there. Distinguish the two.
		const roleQ = `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`
		var exists bool
		if err := r.pool.QueryRow(ctx, roleQ, roleName).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.NotFound(domain.EntityRole)
		}
	}
	return nil
}

func (r *postgresRepo) ListActive(ctx context.Context, in ListInput) ([]domain.Customer, int64, error) {
	col, ok := sortColumns[in.SortBy]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if in.Desc {
		dir = "DESC"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM customers WHERE enabled`).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`
SELECT id, username, email, password_hash, enabled, created_at
FROM customers
WHERE enabled
ORDER BY %s %s
LIMIT $1 OFFSET $2
`, col, dir)
	rows, err := r.pool.Query(ctx, q, in.Size, in.Page*in.Size)
	if err != nil {
		return nil, 0, err
	}
	customers, err := r.collectCustomers(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *postgresRepo) ListDisabled(ctx context.Context) ([]domain.Customer, error) {
	const q = `
SELECT id, username, email, password_hash, enabled, created_at
FROM customers
WHERE NOT enabled
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return r.collectCustomers(ctx, rows)
}

func (r *postgresRepo) HasOrders(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM orders WHERE customer_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(domain.EntityCustomer)
	}
	return nil
}

func (r *postgresRepo) Disable(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE customers SET enabled = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(domain.EntityCustomer)
	}
	return nil
}

func (r *postgresRepo) scanCustomer(ctx context.Context, row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.Enabled, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(domain.EntityCustomer)
		}
		return nil, err
	}
	if c.Roles, err = r.loadRoles(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) collectCustomers(ctx context.Context, rows pgx.Rows) ([]domain.Customer, error) {
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.Enabled, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		roles, err := r.loadRoles(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Roles = roles
	}
	return result, nil
}

func (r *postgresRepo) loadRoles(ctx context.Context, customerID int64) ([]string, error) {
	const q = `
SELECT r.name
FROM roles r
JOIN customer_roles cr ON cr.role_id = r.id
WHERE cr.customer_id = $1
ORDER BY r.id
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}
