package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

type productSeed struct {
	Name        string
	Description string
	Price       string
	Stock       int
	Category    string
}

// Apply inserts basic seed data for manual testing. It is idempotent via
// ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := map[string]int64{}
	for _, name := range []string{"electronics", "clothing", "home"} {
		id, err := ensureCategory(ctx, pool, name)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categories[name] = id
	}

	if err := ensureAdmin(ctx, pool); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	products := []productSeed{
		{
			Name:        "wireless mouse",
			Description: "a mouse without wires",
			Price:       "19.90",
			Stock:       50,
			Category:    "electronics",
		},
		{
			Name:        "mechanical keyboard",
			Description: "clicky keys, RGB lighting",
			Price:       "89.00",
			Stock:       25,
			Category:    "electronics",
		},
		{
			Name:        "cotton t-shirt",
			Description: "plain tee, unisex fit",
			Price:       "12.50",
			Stock:       100,
			Category:    "clothing",
		},
		{
			Name:        "ceramic mug set",
			Description: "four mugs, dishwasher safe",
			Price:       "24.00",
			Stock:       40,
			Category:    "home",
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, categories[p.Category], p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name string) (int64, error) {
	const q = `
INSERT INTO categories (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`
	var id int64
	if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ensureAdmin creates the bootstrap admin account. The password comes from
// SEED_ADMIN_PASSWORD so real deployments never ship the default.
func ensureAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO customers (username, email, password_hash)
VALUES ('admin', 'admin@example.com', $1)
ON CONFLICT (username) DO NOTHING
RETURNING id
`
	var id int64
	err = pool.QueryRow(ctx, q, string(hash)).Scan(&id)
	if err != nil {
		// Already seeded; look the account up for the role grants below.
		const lookup = `SELECT id FROM customers WHERE username = 'admin'`
		if lookupErr := pool.QueryRow(ctx, lookup).Scan(&id); lookupErr != nil {
			return lookupErr
		}
	}

	const roleQ = `
INSERT INTO customer_roles (customer_id, role_id)
SELECT $1, id FROM roles WHERE name = ANY($2)
ON CONFLICT DO NOTHING
`
	_, err = pool.Exec(ctx, roleQ, id, []string{domain.RoleAdmin, domain.RoleCustomer})
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID int64, p productSeed) error {
	const q = `
INSERT INTO products (name, description, price, stock, category_id)
SELECT $1, $2, $3, $4, $5
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Price, p.Stock, categoryID)
	return err
}
