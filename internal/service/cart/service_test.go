package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

type stubRepo struct {
	cart       *domain.Cart
	exists     bool
	upserts    []int
	removed    bool
	cleared    bool
	createdFor int64
}

func (s *stubRepo) CreateForCustomer(_ context.Context, customerID int64) (*domain.Cart, error) {
	s.createdFor = customerID
	return s.cart, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Cart, error) {
	return s.cart, nil
}

func (s *stubRepo) GetByCustomerID(_ context.Context, _ int64) (*domain.Cart, error) {
	if s.cart == nil {
		return nil, domain.NotFound(domain.EntityCart)
	}
	return s.cart, nil
}

func (s *stubRepo) ExistsByID(_ context.Context, _ int64) (bool, error) { return s.exists, nil }

func (s *stubRepo) UpsertLine(_ context.Context, _, _ int64, quantity int) error {
	s.upserts = append(s.upserts, quantity)
	return nil
}

func (s *stubRepo) RemoveLine(_ context.Context, _, _ int64) error {
	s.removed = true
	return nil
}

func (s *stubRepo) Clear(_ context.Context, _ int64) error {
	s.cleared = true
	return nil
}

type stubCustomers struct {
	customer *domain.Customer
	err      error
}

func (s *stubCustomers) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	return s.customer, s.err
}

type stubProducts struct {
	product *domain.Product
	err     error
}

func (s *stubProducts) GetByID(_ context.Context, _ int64) (*domain.Product, error) {
	return s.product, s.err
}

func TestCreateForCustomerReturnsExistingCart(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: 3, CustomerID: 7}}
	customers := &stubCustomers{customer: &domain.Customer{ID: 7, Username: "alice01", Enabled: true}}
	svc := New(repo, customers, &stubProducts{}, nil)

	c, err := svc.CreateForCustomer(context.Background(), 7)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID != 3 || repo.createdFor != 7 {
		t.Fatalf("unexpected cart %+v", c)
	}
}

func TestCreateForCustomerRejectsDisabled(t *testing.T) {
	customers := &stubCustomers{customer: &domain.Customer{ID: 7, Username: "ghost99", Enabled: false}}
	svc := New(&stubRepo{}, customers, &stubProducts{}, nil)

	_, err := svc.CreateForCustomer(context.Background(), 7)
	var ne *domain.NotEnabledError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotEnabledError, got %v", err)
	}
}

func TestAddProductRejectsNonPositiveQuantity(t *testing.T) {
	svc := New(&stubRepo{exists: true}, &stubCustomers{}, &stubProducts{}, nil)

	_, err := svc.AddProduct(context.Background(), 1, 2, 0)
	var inv *domain.InvalidArgumentError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}

func TestAddProductRejectsDisabledProduct(t *testing.T) {
	products := &stubProducts{product: &domain.Product{ID: 2, Name: "old lamp", Enabled: false}}
	svc := New(&stubRepo{exists: true}, &stubCustomers{}, products, nil)

	_, err := svc.AddProduct(context.Background(), 1, 2, 1)
	var ne *domain.NotEnabledError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotEnabledError, got %v", err)
	}
}

func TestAddProductRejectsUnknownCart(t *testing.T) {
	products := &stubProducts{product: &domain.Product{ID: 2, Name: "mouse", Enabled: true}}
	svc := New(&stubRepo{exists: false}, &stubCustomers{}, products, nil)

	_, err := svc.AddProduct(context.Background(), 1, 2, 1)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err.Error() != "Id not found in cart" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAddProductReportsCartBeforeProduct(t *testing.T) {
	products := &stubProducts{err: domain.NotFound(domain.EntityProduct)}
	svc := New(&stubRepo{exists: false}, &stubCustomers{}, products, nil)

	_, err := svc.AddProduct(context.Background(), 1, 2, 1)
	if err == nil || err.Error() != "Id not found in cart" {
		t.Fatalf("expected cart lookup to fail first, got %v", err)
	}
}

func TestAddProductUpserts(t *testing.T) {
	repo := &stubRepo{exists: true, cart: &domain.Cart{ID: 1}}
	products := &stubProducts{product: &domain.Product{ID: 2, Name: "mouse", Enabled: true}}
	svc := New(repo, &stubCustomers{}, products, nil)

	if _, err := svc.AddProduct(context.Background(), 1, 2, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(repo.upserts) != 1 || repo.upserts[0] != 3 {
		t.Errorf("upserts = %v, want [3]", repo.upserts)
	}
}

func TestClearRejectsUnknownCart(t *testing.T) {
	svc := New(&stubRepo{exists: false}, &stubCustomers{}, &stubProducts{}, nil)

	err := svc.Clear(context.Background(), 1)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
