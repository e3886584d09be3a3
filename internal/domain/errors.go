package domain

import "fmt"

// NotFoundError indicates the referenced id/key does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Id not found in %s", e.Entity)
}

// NotEnabledError indicates the entity exists but is disabled.
type NotEnabledError struct {
	Name string
}

func (e *NotEnabledError) Error() string {
	return fmt.Sprintf("Cannot proceed: %s is not enabled", e.Name)
}

// InsufficientStockError indicates a requested quantity exceeds available stock.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for this product : %s", e.ProductName)
}

// InvalidArgumentError indicates a structurally invalid caller value.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// InvalidTransitionError indicates an order-status change that violates the
// state machine.
type InvalidTransitionError struct {
	Message string
}

func (e *InvalidTransitionError) Error() string {
	return e.Message
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

func NotEnabled(name string) error {
	return &NotEnabledError{Name: name}
}

func InsufficientStock(productName string) error {
	return &InsufficientStockError{ProductName: productName}
}

func InvalidArgumentf(format string, args ...interface{}) error {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

func InvalidTransitionf(format string, args ...interface{}) error {
	return &InvalidTransitionError{Message: fmt.Sprintf(format, args...)}
}
