package orderdetail

import (
	"context"
	"errors"
	"testing"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	orderrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/order"
)

type stubOrders struct {
	orderExists bool
	lines       []domain.OrderLine
}

func (s *stubOrders) ExistsByID(_ context.Context, _ int64) (bool, error) {
	return s.orderExists, nil
}

func (s *stubOrders) ListLines(_ context.Context, _ orderrepo.ListInput) ([]domain.OrderLine, int64, error) {
	return s.lines, int64(len(s.lines)), nil
}

func (s *stubOrders) ListLinesByOrder(_ context.Context, _ int64) ([]domain.OrderLine, error) {
	return s.lines, nil
}

func (s *stubOrders) ListLinesByProduct(_ context.Context, _ int64) ([]domain.OrderLine, error) {
	return s.lines, nil
}

type stubProducts struct {
	exists bool
}

func (s *stubProducts) ExistsByID(_ context.Context, _ int64) (bool, error) {
	return s.exists, nil
}

func TestFindByOrderIDUnknownOrder(t *testing.T) {
	svc := New(&stubOrders{orderExists: false}, &stubProducts{}, nil, nil)

	_, err := svc.FindByOrderID(context.Background(), 9)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err.Error() != "Id not found in order" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestFindByProductIDUnknownProduct(t *testing.T) {
	svc := New(&stubOrders{orderExists: true}, &stubProducts{exists: false}, nil, nil)

	_, err := svc.FindByProductID(context.Background(), 9)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestFindByOrderIDReturnsLines(t *testing.T) {
	orders := &stubOrders{
		orderExists: true,
		lines: []domain.OrderLine{
			{ID: 1, OrderID: 9, ProductID: 2, ProductName: "mouse", Quantity: 1},
		},
	}
	svc := New(orders, &stubProducts{exists: true}, nil, nil)

	lines, err := svc.FindByOrderID(context.Background(), 9)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductName != "mouse" {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestReadAllRejectsUnknownSortField(t *testing.T) {
	svc := New(&stubOrders{}, &stubProducts{}, nil, nil)

	_, _, err := svc.ReadAll(context.Background(), 0, "quantity", false)
	var inv *domain.InvalidArgumentError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
	if err.Error() != "Invalid field: quantity" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
