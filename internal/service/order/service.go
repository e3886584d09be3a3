package order

import (
	"context"
	"io"
	"log"

	"github.com/alejandrorivera22/ecom-cart/internal/cache"
	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	orderrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/order"
)

// PageSize is the fixed page size for order listings.
const PageSize = 5

// sortFields are the fields order listings may be sorted by.
var sortFields = map[string]bool{
	"customer":   true,
	"totalPrice": true,
}

type customerRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// Service handles order placement, status transitions and cancellation.
type Service struct {
	repo      orderrepo.Repository
	customers customerRepo
	cache     cache.Cache
	logger    *log.Logger
}

// New creates a Service. A nil cache disables caching.
func New(repo orderrepo.Repository, customers customerRepo, c cache.Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if c == nil {
		c = cache.NewMemory()
	}
	return &Service{repo: repo, customers: customers, cache: c, logger: logger}
}

// LineInput is one product request in a new order.
type LineInput struct {
	ProductID int64 `json:"productId" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CreateInput captures an order placement request.
type CreateInput struct {
	CustomerID int64       `json:"customerId" binding:"required,min=1"`
	Lines      []LineInput `json:"products" binding:"required,min=1,dive"`
}

// Create places a new PENDING order. Stock for every line is reserved
// atomically; any failing line aborts the whole order.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	c, err := s.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !c.Enabled {
		return nil, domain.NotEnabled(c.Username)
	}
	if len(in.Lines) == 0 {
		return nil, domain.InvalidArgumentf("order must contain at least one product")
	}

	lines := make([]orderrepo.LineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			return nil, domain.InvalidArgumentf("product id and quantity must be positive")
		}
		lines = append(lines, orderrepo.LineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	o, err := s.repo.Create(ctx, orderrepo.CreateInput{CustomerID: in.CustomerID, Lines: lines})
	if err != nil {
		return nil, err
	}
	s.evictOrder(ctx, o)
	s.cacheOrder(ctx, o)
	return o, nil
}

// FindByID returns the order with its lines.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var cached domain.Order
	if hit, _ := s.cache.Get(ctx, cache.OrderIDKey(id), &cached); hit {
		return &cached, nil
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheOrder(ctx, o)
	return o, nil
}

// FindByCustomer lists the customer's orders.
func (s *Service) FindByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	var cached []domain.Order
	if hit, _ := s.cache.Get(ctx, cache.OrderCustomerKey(customerID), &cached); hit {
		return cached, nil
	}
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, cache.OrderCustomerKey(customerID), orders, cache.OrderTTL); err != nil {
		s.logger.Printf("order cache: put customer error=%v", err)
	}
	return orders, nil
}

// ReadAll returns one page of orders.
func (s *Service) ReadAll(ctx context.Context, page int, sortBy string, desc bool) ([]domain.Order, int64, error) {
	if sortBy != "" && !sortFields[sortBy] {
		return nil, 0, domain.InvalidArgumentf("Invalid field: %s", sortBy)
	}
	return s.repo.List(ctx, orderrepo.ListInput{Page: page, Size: PageSize, SortBy: sortBy, Desc: desc})
}

// UpdateStatus moves the order one step along PENDING -> SHIPPED ->
// COMPLETED. Skipping a step or leaving a terminal status is refused.
func (s *Service) UpdateStatus(ctx context.Context, id int64, next domain.OrderStatus) (*domain.Order, error) {
	if next == "" {
		return nil, domain.InvalidArgumentf("status is required")
	}
	if !domain.ValidStatus(next) {
		return nil, domain.InvalidArgumentf("Invalid status: %s", next)
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(o.Status, next) {
		return nil, domain.InvalidTransitionf("Cannot change state of %s to %s", o.Status, next)
	}

	applied, err := s.repo.UpdateStatus(ctx, id, o.Status, next)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Someone else moved the order first; the transition we validated
		// no longer starts from the current status.
		return nil, domain.InvalidTransitionf("Cannot change state of %s to %s", o.Status, next)
	}
	o.Status = next
	s.evictOrder(ctx, o)
	s.cacheOrder(ctx, o)
	return o, nil
}

// Cancel marks the order CANCELLED. Shipped and completed orders cannot be
// cancelled; cancelling an already cancelled order is a no-op. Reserved
// stock is not returned.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch o.Status {
	case domain.StatusCompleted, domain.StatusShipped:
		return nil, domain.InvalidTransitionf("You cannot cancel an order that has already been completed or shipped")
	case domain.StatusCancelled:
		return o, nil
	}

	applied, err := s.repo.UpdateStatus(ctx, id, o.Status, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.InvalidTransitionf("Cannot change state of %s to %s", o.Status, domain.StatusCancelled)
	}
	o.Status = domain.StatusCancelled
	s.evictOrder(ctx, o)
	s.cacheOrder(ctx, o)
	return o, nil
}

func (s *Service) cacheOrder(ctx context.Context, o *domain.Order) {
	if err := s.cache.Put(ctx, cache.OrderIDKey(o.ID), o, cache.OrderTTL); err != nil {
		s.logger.Printf("order cache: put error=%v", err)
	}
}

func (s *Service) evictOrder(ctx context.Context, o *domain.Order) {
	keys := []string{
		cache.OrderIDKey(o.ID),
		cache.OrderCustomerKey(o.CustomerID),
		cache.OrderDetailOrderKey(o.ID),
	}
	if err := s.cache.Evict(ctx, keys...); err != nil {
		s.logger.Printf("order cache: evict error=%v", err)
	}
}
