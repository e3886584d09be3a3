package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	orderrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/order"
	ordersvc "github.com/alejandrorivera22/ecom-cart/internal/service/order"
)

type stubOrderRepo struct {
	order     *domain.Order
	createErr error
	updateOK  bool
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateInput) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Order{ID: 1, CustomerID: in.CustomerID, Status: domain.StatusPending, TotalPrice: decimal.RequireFromString("25.00")}, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	if s.order == nil {
		return nil, domain.NotFound(domain.EntityOrder)
	}
	o := *s.order
	return &o, nil
}

func (s *stubOrderRepo) ExistsByID(_ context.Context, _ int64) (bool, error) {
	return s.order != nil, nil
}

func (s *stubOrderRepo) List(_ context.Context, _ orderrepo.ListInput) ([]domain.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrderRepo) ListByCustomer(_ context.Context, _ int64) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, _ int64, _, _ domain.OrderStatus) (bool, error) {
	return s.updateOK, nil
}

func (s *stubOrderRepo) ListLines(_ context.Context, _ orderrepo.ListInput) ([]domain.OrderLine, int64, error) {
	return nil, 0, nil
}

func (s *stubOrderRepo) ListLinesByOrder(_ context.Context, _ int64) ([]domain.OrderLine, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListLinesByProduct(_ context.Context, _ int64) ([]domain.OrderLine, error) {
	return nil, nil
}

type stubOrderCustomers struct{}

func (stubOrderCustomers) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	return &domain.Customer{ID: id, Username: "alice01", Enabled: true}, nil
}

func orderTestRouter(t *testing.T, repo *stubOrderRepo) (*httptest.Server, string) {
	t.Helper()
	auth := testAuthService(t, domain.RoleAdmin, domain.RoleCustomer)
	orders := ordersvc.New(repo, stubOrderCustomers{}, nil, logDiscard())
	router := buildRouter(logDiscard(), nil, Deps{Auth: auth, Orders: orders})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, issueToken(t, auth)
}

func doJSON(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func TestCreateOrderReturns201(t *testing.T) {
	srv, token := orderTestRouter(t, &stubOrderRepo{})

	resp := doJSON(t, http.MethodPost, srv.URL+"/order", token,
		`{"customerId": 7, "products": [{"productId": 3, "quantity": 2}]}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var got domain.Order
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != domain.StatusPending {
		t.Errorf("status = %s, want PENDING", got.Status)
	}
}

func TestCreateOrderRejectsEmptyProducts(t *testing.T) {
	srv, token := orderTestRouter(t, &stubOrderRepo{})

	resp := doJSON(t, http.MethodPost, srv.URL+"/order", token, `{"customerId": 7, "products": []}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateStatusInvalidTransitionAnswers400(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{ID: 1, CustomerID: 7, Status: domain.StatusPending}}
	srv, token := orderTestRouter(t, repo)

	resp := doJSON(t, http.MethodPatch, srv.URL+"/order/status-order/1", token, `{"status": "COMPLETED"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "BAD_REQUEST" || body.Code != http.StatusBadRequest {
		t.Errorf("unexpected envelope %+v", body)
	}
	if body.Message != "Cannot change state of PENDING to COMPLETED" {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestCancelShippedOrderAnswers400(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{ID: 1, CustomerID: 7, Status: domain.StatusShipped}}
	srv, token := orderTestRouter(t, repo)

	resp := doJSON(t, http.MethodPatch, srv.URL+"/order/cancel/1", token, ``)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "You cannot cancel an order that has already been completed or shipped" {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestGetUnknownOrderAnswers400(t *testing.T) {
	srv, token := orderTestRouter(t, &stubOrderRepo{})

	resp := doJSON(t, http.MethodGet, srv.URL+"/order/42", token, ``)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Id not found in order" {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestListOrdersEmptyAnswers204(t *testing.T) {
	srv, token := orderTestRouter(t, &stubOrderRepo{})

	resp := doJSON(t, http.MethodGet, srv.URL+"/order", token, ``)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
}

func TestOrderRoutesRequireToken(t *testing.T) {
	srv, _ := orderTestRouter(t, &stubOrderRepo{})

	resp := doJSON(t, http.MethodGet, srv.URL+"/order", "", ``)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
