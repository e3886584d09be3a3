package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// transitions lists the single allowed successor per status. COMPLETED and
// CANCELLED are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusShipped},
	StatusShipped:   {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ValidStatus reports whether s names a known order status.
func ValidStatus(s OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether an order in status from may move to status to.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is an immutable record of a purchase: its lines carry the unit price
// snapshotted at placement time.
type Order struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customerId"`
	Status     OrderStatus     `json:"status"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"dateCreated"`
	Lines      []OrderLine     `json:"orderDetails,omitempty"`
}

// OrderLine snapshots one product at the moment the order was placed.
type OrderLine struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"dateCreated"`
}
