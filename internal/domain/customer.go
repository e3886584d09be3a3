package domain

import "time"

// Entity names used by NotFound errors; they match the table names.
const (
	EntityCustomer = "customer"
	EntityProduct  = "product"
	EntityCategory = "category"
	EntityCart     = "cart"
	EntityOrder    = "order"
	EntityRole     = "role"
)

// Customer represents a registered account. Disabling substitutes for deletion
// once the customer has orders.
type Customer struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Enabled      bool      `json:"enabled"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}
