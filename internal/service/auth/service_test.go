package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	customersvc "github.com/alejandrorivera22/ecom-cart/internal/service/customer"
)

type stubCustomers struct {
	customer *domain.Customer
	authErr  error
}

func (s *stubCustomers) Create(_ context.Context, in customersvc.CreateInput) (*domain.Customer, error) {
	return &domain.Customer{ID: 1, Username: in.Username, Email: in.Email, Enabled: true}, nil
}

func (s *stubCustomers) Authenticate(_ context.Context, _ string) (*domain.Customer, error) {
	return s.customer, s.authErr
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

func TestLoginIssuesParsableToken(t *testing.T) {
	customers := &stubCustomers{customer: &domain.Customer{
		ID:           7,
		Username:     "alice01",
		PasswordHash: hashed(t, "secret"),
		Enabled:      true,
		Roles:        []string{domain.RoleCustomer, domain.RoleSeller},
	}}
	svc := New(customers, "test-secret", time.Hour)

	token, c, err := svc.Login(context.Background(), LoginInput{Username: "alice01", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if c.Username != "alice01" {
		t.Errorf("customer = %+v", c)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "7" || claims.Username != "alice01" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if len(claims.Roles) != 2 {
		t.Errorf("roles = %v", claims.Roles)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	customers := &stubCustomers{customer: &domain.Customer{
		ID:           7,
		Username:     "alice01",
		PasswordHash: hashed(t, "secret"),
		Enabled:      true,
	}}
	svc := New(customers, "test-secret", time.Hour)

	_, _, err := svc.Login(context.Background(), LoginInput{Username: "alice01", Password: "nope"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUsername(t *testing.T) {
	customers := &stubCustomers{authErr: domain.NotFound(domain.EntityCustomer)}
	svc := New(customers, "test-secret", time.Hour)

	_, _, err := svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "secret"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	customers := &stubCustomers{customer: &domain.Customer{
		ID:           7,
		Username:     "alice01",
		PasswordHash: hashed(t, "secret"),
		Enabled:      true,
	}}
	issuer := New(customers, "secret-a", time.Hour)
	verifier := New(customers, "secret-b", time.Hour)

	token, _, err := issuer.Login(context.Background(), LoginInput{Username: "alice01", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	customers := &stubCustomers{customer: &domain.Customer{
		ID:           7,
		Username:     "alice01",
		PasswordHash: hashed(t, "secret"),
		Enabled:      true,
	}}
	svc := New(customers, "test-secret", -time.Minute)

	token, _, err := svc.Login(context.Background(), LoginInput{Username: "alice01", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.ParseToken(token); err == nil {
		t.Fatal("expected parse to fail for expired token")
	}
}
