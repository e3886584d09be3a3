package product

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

type CreateInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  int64
}

// UpdateInput replaces the mutable product fields. Stock is updated
// separately so a catalogue edit never races a sale.
type UpdateInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  int64
}

// ListInput selects one page of products. SortBy must already be a valid
// column name; callers whitelist it.
type ListInput struct {
	Page   int
	Size   int
	SortBy string
	Desc   bool
}

// Repository persists and fetches products.
type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ListActive(ctx context.Context, in ListInput) ([]domain.Product, int64, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	ListDisabled(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*domain.Product, error)
	UpdateStock(ctx context.Context, id int64, stock int) (*domain.Product, error)
	HasReferences(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Disable(ctx context.Context, id int64) error
}
