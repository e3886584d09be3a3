package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	orderrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/order"
)

type stubRepo struct {
	created      *orderrepo.CreateInput
	createResult *domain.Order
	createErr    error

	getResult *domain.Order
	getErr    error

	updateOK   bool
	updateErr  error
	lastUpdate struct {
		id             int64
		expected, next domain.OrderStatus
	}

	listByCustomer []domain.Order
	lastList       orderrepo.ListInput
}

func (s *stubRepo) Create(_ context.Context, in orderrepo.CreateInput) (*domain.Order, error) {
	s.created = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.createResult != nil {
		return s.createResult, nil
	}
	return &domain.Order{ID: 1, CustomerID: in.CustomerID, Status: domain.StatusPending}, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	o := *s.getResult
	return &o, nil
}

func (s *stubRepo) ExistsByID(_ context.Context, _ int64) (bool, error) { return true, nil }

func (s *stubRepo) List(_ context.Context, in orderrepo.ListInput) ([]domain.Order, int64, error) {
	s.lastList = in
	return nil, 0, nil
}

func (s *stubRepo) ListByCustomer(_ context.Context, _ int64) ([]domain.Order, error) {
	return s.listByCustomer, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id int64, expected, next domain.OrderStatus) (bool, error) {
	s.lastUpdate.id = id
	s.lastUpdate.expected = expected
	s.lastUpdate.next = next
	return s.updateOK, s.updateErr
}

func (s *stubRepo) ListLines(_ context.Context, _ orderrepo.ListInput) ([]domain.OrderLine, int64, error) {
	return nil, 0, nil
}

func (s *stubRepo) ListLinesByOrder(_ context.Context, _ int64) ([]domain.OrderLine, error) {
	return nil, nil
}

func (s *stubRepo) ListLinesByProduct(_ context.Context, _ int64) ([]domain.OrderLine, error) {
	return nil, nil
}

type stubCustomers struct {
	customer *domain.Customer
	err      error
}

func (s *stubCustomers) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	return s.customer, s.err
}

func enabledCustomer() *stubCustomers {
	return &stubCustomers{customer: &domain.Customer{ID: 7, Username: "alice01", Enabled: true}}
}

func TestCreateKeepsLinesAsGiven(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, enabledCustomer(), nil, nil)

	in := []LineInput{
		{ProductID: 9, Quantity: 1},
		{ProductID: 2, Quantity: 2},
		{ProductID: 9, Quantity: 3},
	}
	_, err := svc.Create(context.Background(), CreateInput{CustomerID: 7, Lines: in})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(repo.created.Lines) != len(in) {
		t.Fatalf("expected %d lines, got %d", len(in), len(repo.created.Lines))
	}
	for i, want := range in {
		got := repo.created.Lines[i]
		if got.ProductID != want.ProductID || got.Quantity != want.Quantity {
			t.Errorf("line %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestCreateRejectsDisabledCustomer(t *testing.T) {
	customers := &stubCustomers{customer: &domain.Customer{ID: 7, Username: "ghost99", Enabled: false}}
	svc := New(&stubRepo{}, customers, nil, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID: 7,
		Lines:      []LineInput{{ProductID: 1, Quantity: 1}},
	})
	var ne *domain.NotEnabledError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotEnabledError, got %v", err)
	}
	if err.Error() != "Cannot proceed: ghost99 is not enabled" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	svc := New(&stubRepo{}, enabledCustomer(), nil, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID: 7,
		Lines:      []LineInput{{ProductID: 1, Quantity: 0}},
	})
	var inv *domain.InvalidArgumentError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}

func TestUpdateStatusSingleStep(t *testing.T) {
	repo := &stubRepo{
		getResult: &domain.Order{ID: 1, CustomerID: 7, Status: domain.StatusPending},
		updateOK:  true,
	}
	svc := New(repo, enabledCustomer(), nil, nil)

	o, err := svc.UpdateStatus(context.Background(), 1, domain.StatusShipped)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if o.Status != domain.StatusShipped {
		t.Errorf("status = %s, want SHIPPED", o.Status)
	}
	if repo.lastUpdate.expected != domain.StatusPending {
		t.Errorf("guard expected %s, want PENDING", repo.lastUpdate.expected)
	}
}

func TestUpdateStatusRejectsSkippedStep(t *testing.T) {
	repo := &stubRepo{
		getResult: &domain.Order{ID: 1, CustomerID: 7, Status: domain.StatusPending},
	}
	svc := New(repo, enabledCustomer(), nil, nil)

	_, err := svc.UpdateStatus(context.Background(), 1, domain.StatusCompleted)
	var it *domain.InvalidTransitionError
	if !errors.As(err, &it) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if err.Error() != "Cannot change state of PENDING to COMPLETED" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := New(&stubRepo{}, enabledCustomer(), nil, nil)

	_, err := svc.UpdateStatus(context.Background(), 1, "DELIVERED")
	var inv *domain.InvalidArgumentError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}

func TestCancelFromPending(t *testing.T) {
	repo := &stubRepo{
		getResult: &domain.Order{ID: 1, CustomerID: 7, Status: domain.StatusPending, TotalPrice: decimal.NewFromInt(10)},
		updateOK:  true,
	}
	svc := New(repo, enabledCustomer(), nil, nil)

	o, err := svc.Cancel(context.Background(), 1)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if o.Status != domain.StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", o.Status)
	}
}

func TestCancelRefusesShippedAndCompleted(t *testing.T) {
	for _, status := range []domain.OrderStatus{domain.StatusShipped, domain.StatusCompleted} {
		repo := &stubRepo{getResult: &domain.Order{ID: 1, CustomerID: 7, Status: status}}
		svc := New(repo, enabledCustomer(), nil, nil)

		_, err := svc.Cancel(context.Background(), 1)
		var it *domain.InvalidTransitionError
		if !errors.As(err, &it) {
			t.Fatalf("cancel from %s: expected InvalidTransitionError, got %v", status, err)
		}
		if err.Error() != "You cannot cancel an order that has already been completed or shipped" {
			t.Errorf("unexpected message %q", err.Error())
		}
	}
}

func TestCancelAlreadyCancelledIsNoOp(t *testing.T) {
	repo := &stubRepo{getResult: &domain.Order{ID: 1, CustomerID: 7, Status: domain.StatusCancelled}}
	svc := New(repo, enabledCustomer(), nil, nil)

	o, err := svc.Cancel(context.Background(), 1)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if o.Status != domain.StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", o.Status)
	}
	if repo.lastUpdate.id != 0 {
		t.Error("no status update should be issued")
	}
}

func TestReadAllForwardsSortAndDirection(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, enabledCustomer(), nil, nil)

	if _, _, err := svc.ReadAll(context.Background(), 2, "totalPrice", true); err != nil {
		t.Fatalf("read all: %v", err)
	}
	if repo.lastList.Page != 2 || repo.lastList.SortBy != "totalPrice" || !repo.lastList.Desc {
		t.Errorf("unexpected list input %+v", repo.lastList)
	}
	if repo.lastList.Size != PageSize {
		t.Errorf("size = %d, want %d", repo.lastList.Size, PageSize)
	}
}

func TestReadAllRejectsUnknownSortField(t *testing.T) {
	svc := New(&stubRepo{}, enabledCustomer(), nil, nil)

	_, _, err := svc.ReadAll(context.Background(), 0, "dateCreated", false)
	var inv *domain.InvalidArgumentError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
	if err.Error() != "Invalid field: dateCreated" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
