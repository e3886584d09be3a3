package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	customersvc "github.com/alejandrorivera22/ecom-cart/internal/service/customer"
)

// ErrInvalidCredentials is returned when username/password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

type customerService interface {
	Create(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error)
	Authenticate(ctx context.Context, username string) (*domain.Customer, error)
}

// Service handles registration and login, issuing signed JWTs.
type Service struct {
	customers customerService
	tokens    *tokenManager
}

func New(customers customerService, secret string, ttl time.Duration) *Service {
	return &Service{customers: customers, tokens: newTokenManager(secret, ttl)}
}

// LoginInput captures the fields expected by the login endpoint.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the credentials and returns a signed token alongside the
// customer. A wrong username and a wrong password are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, *domain.Customer, error) {
	c, err := s.customers.Authenticate(ctx, in.Username)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(in.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(c)
	if err != nil {
		return "", nil, err
	}
	return token, c, nil
}

// Register creates a new customer account.
func (s *Service) Register(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error) {
	return s.customers.Create(ctx, in)
}

// ParseToken validates a bearer token and returns its claims.
func (s *Service) ParseToken(raw string) (*Claims, error) {
	return s.tokens.Parse(raw)
}
