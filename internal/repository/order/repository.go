package order

import (
	"context"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

// LineInput is one product request inside a new order. A product may
// appear on more than one line; every line is reserved on its own.
type LineInput struct {
	ProductID int64
	Quantity  int
}

type CreateInput struct {
	CustomerID int64
	Lines      []LineInput
}

// ListInput selects one page of orders. SortBy must already be a valid
// column name; callers whitelist it.
type ListInput struct {
	Page   int
	Size   int
	SortBy string
	Desc   bool
}

// Repository persists orders and their snapshot lines.
type Repository interface {
	// Create reserves stock line by line, in the order given, and writes
	// the order and its lines in one transaction. Any failing line aborts
	// the whole order and releases every reservation made so far.
	Create(ctx context.Context, in CreateInput) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, in ListInput) ([]domain.Order, int64, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	// UpdateStatus moves the order to next only while its current status
	// still equals expected. It reports whether a row was updated.
	UpdateStatus(ctx context.Context, id int64, expected, next domain.OrderStatus) (bool, error)
	ListLines(ctx context.Context, in ListInput) ([]domain.OrderLine, int64, error)
	ListLinesByOrder(ctx context.Context, orderID int64) ([]domain.OrderLine, error)
	ListLinesByProduct(ctx context.Context, productID int64) ([]domain.OrderLine, error)
}
