package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is never hard-deleted while referenced by an order-line or
// cart-line; the enabled flag substitutes for deletion in that case.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Enabled     bool            `json:"enabled"`
	CategoryID  int64           `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// StockReservation is the snapshot returned by a successful stock
// reservation: the unit price at reservation time, never a live reference.
type StockReservation struct {
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
}
