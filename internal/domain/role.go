package domain

// Role names assignable to customers.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
	RoleSeller   = "SELLER"
)

// ValidRole reports whether name is one of the assignable roles.
func ValidRole(name string) bool {
	switch name {
	case RoleCustomer, RoleAdmin, RoleSeller:
		return true
	}
	return false
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
