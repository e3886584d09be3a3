package cart

import (
	"context"
	"io"
	"log"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	cartrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/cart"
)

type customerRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Service handles the shopping cart: one cart per customer, one line per
// product, quantities merged on repeat adds.
type Service struct {
	repo      cartrepo.Repository
	customers customerRepo
	products  productRepo
	logger    *log.Logger
}

func New(repo cartrepo.Repository, customers customerRepo, products productRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, customers: customers, products: products, logger: logger}
}

// CreateForCustomer ensures the customer has a cart and returns it. A
// repeated call returns the same cart.
func (s *Service) CreateForCustomer(ctx context.Context, customerID int64) (*domain.Cart, error) {
	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !c.Enabled {
		return nil, domain.NotEnabled(c.Username)
	}
	return s.repo.CreateForCustomer(ctx, customerID)
}

// AddProduct adds quantity of the product to the cart, merging with an
// existing line for the same product.
func (s *Service) AddProduct(ctx context.Context, cartID, productID int64, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, domain.InvalidArgumentf("quantity must be positive")
	}
	if exists, err := s.repo.ExistsByID(ctx, cartID); err != nil {
		return nil, err
	} else if !exists {
		return nil, domain.NotFound(domain.EntityCart)
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.Enabled {
		return nil, domain.NotEnabled(p.Name)
	}
	if err := s.repo.UpsertLine(ctx, cartID, productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cartID)
}

// RemoveProduct drops the product's line from the cart. Removing a product
// that is not in the cart is a no-op.
func (s *Service) RemoveProduct(ctx context.Context, cartID, productID int64) (*domain.Cart, error) {
	if exists, err := s.repo.ExistsByID(ctx, cartID); err != nil {
		return nil, err
	} else if !exists {
		return nil, domain.NotFound(domain.EntityCart)
	}
	if err := s.repo.RemoveLine(ctx, cartID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cartID)
}

// FindByID returns the cart with its lines priced from the live catalogue.
func (s *Service) FindByID(ctx context.Context, cartID int64) (*domain.Cart, error) {
	return s.repo.GetByID(ctx, cartID)
}

// FindByCustomer returns the customer's cart.
func (s *Service) FindByCustomer(ctx context.Context, customerID int64) (*domain.Cart, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.repo.GetByCustomerID(ctx, customerID)
}

// Clear empties the cart but keeps it around for reuse.
func (s *Service) Clear(ctx context.Context, cartID int64) error {
	if exists, err := s.repo.ExistsByID(ctx, cartID); err != nil {
		return err
	} else if !exists {
		return domain.NotFound(domain.EntityCart)
	}
	return s.repo.Clear(ctx, cartID)
}
