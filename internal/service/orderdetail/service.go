package orderdetail

import (
	"context"
	"io"
	"log"

	"github.com/alejandrorivera22/ecom-cart/internal/cache"
	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	orderrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/order"
)

// PageSize is the fixed page size for order-line listings.
const PageSize = 5

// sortFields are the fields order-line listings may be sorted by.
var sortFields = map[string]bool{
	"product": true,
	"order":   true,
	"price":   true,
}

type orderRepo interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ListLines(ctx context.Context, in orderrepo.ListInput) ([]domain.OrderLine, int64, error)
	ListLinesByOrder(ctx context.Context, orderID int64) ([]domain.OrderLine, error)
	ListLinesByProduct(ctx context.Context, productID int64) ([]domain.OrderLine, error)
}

type productRepo interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// Service exposes read access to order lines, the per-product snapshots
// written at placement time.
type Service struct {
	orders   orderRepo
	products productRepo
	cache    cache.Cache
	logger   *log.Logger
}

// New creates a Service. A nil cache disables caching.
func New(orders orderRepo, products productRepo, c cache.Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if c == nil {
		c = cache.NewMemory()
	}
	return &Service{orders: orders, products: products, cache: c, logger: logger}
}

// ReadAll returns one page of order lines.
func (s *Service) ReadAll(ctx context.Context, page int, sortBy string, desc bool) ([]domain.OrderLine, int64, error) {
	if sortBy != "" && !sortFields[sortBy] {
		return nil, 0, domain.InvalidArgumentf("Invalid field: %s", sortBy)
	}
	return s.orders.ListLines(ctx, orderrepo.ListInput{Page: page, Size: PageSize, SortBy: sortBy, Desc: desc})
}

// FindByOrderID lists the lines of one order.
func (s *Service) FindByOrderID(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	var cached []domain.OrderLine
	if hit, _ := s.cache.Get(ctx, cache.OrderDetailOrderKey(orderID), &cached); hit {
		return cached, nil
	}
	if exists, err := s.orders.ExistsByID(ctx, orderID); err != nil {
		return nil, err
	} else if !exists {
		return nil, domain.NotFound(domain.EntityOrder)
	}
	lines, err := s.orders.ListLinesByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, cache.OrderDetailOrderKey(orderID), lines, cache.OrderTTL); err != nil {
		s.logger.Printf("order detail cache: put error=%v", err)
	}
	return lines, nil
}

// FindByProductID lists every line that ever sold the product.
func (s *Service) FindByProductID(ctx context.Context, productID int64) ([]domain.OrderLine, error) {
	if exists, err := s.products.ExistsByID(ctx, productID); err != nil {
		return nil, err
	} else if !exists {
		return nil, domain.NotFound(domain.EntityProduct)
	}
	return s.orders.ListLinesByProduct(ctx, productID)
}
