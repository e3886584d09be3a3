package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart holds at most one line per product. There is one cart per customer,
// created lazily and never auto-deleted.
type Cart struct {
	ID         int64      `json:"cartId"`
	CustomerID int64      `json:"customerId"`
	CreatedAt  time.Time  `json:"createdAt"`
	Lines      []CartLine `json:"products"`
}

// CartLine is one (cart, product) quantity pair. Name and price are joined
// live from the product at read time, not snapshotted; order lines are the
// ones that snapshot.
type CartLine struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}
