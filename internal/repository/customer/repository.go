package customer

import (
	"context"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

// CreateInput carries the fields needed to register a customer. The base
// CUSTOMER role is assigned in the same transaction as the insert.
type CreateInput struct {
	Username     string
	Email        string
	PasswordHash string
}

// UpdateInput replaces the mutable customer fields.
type UpdateInput struct {
	Username     string
	Email        string
	PasswordHash string
}

// ListInput selects one page of customers. SortBy must already be a valid
// column name; callers whitelist it.
type ListInput struct {
	Page   int
	Size   int
	SortBy string
	Desc   bool
}

// Repository persists and fetches customers and their role assignments.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByUsername(ctx context.Context, username string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*domain.Customer, error)
	AddRole(ctx context.Context, customerID int64, roleName string) error
	ListActive(ctx context.Context, in ListInput) ([]domain.Customer, int64, error)
	ListDisabled(ctx context.Context) ([]domain.Customer, error)
	HasOrders(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Disable(ctx context.Context, id int64) error
}
