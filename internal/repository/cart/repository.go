package cart

import (
	"context"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

// Repository persists carts and their lines. Line prices are never stored;
// reads join the live product catalogue.
type Repository interface {
	// CreateForCustomer returns the customer's existing cart if one is
	// already there, otherwise it creates an empty one.
	CreateForCustomer(ctx context.Context, customerID int64) (*domain.Cart, error)
	GetByID(ctx context.Context, id int64) (*domain.Cart, error)
	GetByCustomerID(ctx context.Context, customerID int64) (*domain.Cart, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// UpsertLine adds quantity to the cart's line for the product,
	// creating the line when absent.
	UpsertLine(ctx context.Context, cartID, productID int64, quantity int) error
	// RemoveLine deletes the line if present; removing an absent line is
	// a no-op.
	RemoveLine(ctx context.Context, cartID, productID int64) error
	Clear(ctx context.Context, cartID int64) error
}
