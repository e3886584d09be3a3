package product

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alejandrorivera22/ecom-cart/internal/cache"
	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	prodrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/product"
)

// PageSize is the fixed page size for product listings.
const PageSize = 5

// sortFields are the fields product listings may be sorted by.
var sortFields = map[string]bool{
	"name":        true,
	"description": true,
	"price":       true,
}

type categoryRepo interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// Service handles the product catalogue: CRUD, stock corrections and the
// delete-or-disable rule.
type Service struct {
	repo       prodrepo.Repository
	categories categoryRepo
	cache      cache.Cache
	logger     *log.Logger
}

// New creates a Service. A nil cache disables caching.
func New(repo prodrepo.Repository, categories categoryRepo, c cache.Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if c == nil {
		c = cache.NewMemory()
	}
	return &Service{repo: repo, categories: categories, cache: c, logger: logger}
}

// CreateInput captures a new catalogue entry.
type CreateInput struct {
	Name        string          `json:"name" binding:"required,min=6,max=50"`
	Description string          `json:"description" binding:"required,min=6,max=50"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"required,min=1"`
	CategoryID  int64           `json:"category" binding:"required,min=1,max=3"`
}

// UpdateInput replaces the mutable product fields.
type UpdateInput struct {
	Name        string          `json:"name" binding:"required,min=6,max=50"`
	Description string          `json:"description" binding:"required,min=6,max=50"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  int64           `json:"category" binding:"required,min=1,max=3"`
}

// Create adds a product to the catalogue.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	if !in.Price.IsPositive() {
		return nil, domain.InvalidArgumentf("price must be positive")
	}
	if exists, err := s.categories.ExistsByID(ctx, in.CategoryID); err != nil {
		return nil, err
	} else if !exists {
		return nil, domain.NotFound(domain.EntityCategory)
	}

	p, err := s.repo.Create(ctx, prodrepo.CreateInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	s.cacheProduct(ctx, p)
	s.evictCategories(ctx)
	return p, nil
}

// FindByID returns an enabled product by id.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var cached domain.Product
	if hit, _ := s.cache.Get(ctx, cache.ProductIDKey(id), &cached); hit {
		return &cached, nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Enabled {
		return nil, domain.NotEnabled(p.Name)
	}
	s.cacheProduct(ctx, p)
	return p, nil
}

// FindByCategory lists the enabled products in one category.
func (s *Service) FindByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	var cached []domain.Product
	if hit, _ := s.cache.Get(ctx, cache.ProductCategoryKey(categoryID), &cached); hit {
		return cached, nil
	}
	if exists, err := s.categories.ExistsByID(ctx, categoryID); err != nil {
		return nil, err
	} else if !exists {
		return nil, domain.NotFound(domain.EntityCategory)
	}
	products, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, cache.ProductCategoryKey(categoryID), products, cache.ProductTTL); err != nil {
		s.logger.Printf("product cache: put category error=%v", err)
	}
	return products, nil
}

// FindDisabled lists every disabled product.
func (s *Service) FindDisabled(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListDisabled(ctx)
}

// ReadAll returns one page of enabled products.
func (s *Service) ReadAll(ctx context.Context, page int, sortBy string, desc bool) ([]domain.Product, int64, error) {
	if sortBy != "" && !sortFields[sortBy] {
		return nil, 0, domain.InvalidArgumentf("Invalid field: %s", sortBy)
	}
	return s.repo.ListActive(ctx, prodrepo.ListInput{Page: page, Size: PageSize, SortBy: sortBy, Desc: desc})
}

// Update replaces the product's catalogue fields. Stock is handled by
// UpdateStock.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Product, error) {
	if !in.Price.IsPositive() {
		return nil, domain.InvalidArgumentf("price must be positive")
	}
	if exists, err := s.categories.ExistsByID(ctx, in.CategoryID); err != nil {
		return nil, err
	} else if !exists {
		return nil, domain.NotFound(domain.EntityCategory)
	}

	p, err := s.repo.Update(ctx, id, prodrepo.UpdateInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	s.cacheProduct(ctx, p)
	// The product may have moved between categories; drop every category
	// listing rather than track the old one.
	s.evictCategories(ctx)
	return p, nil
}

// UpdateStock sets the absolute stock level.
func (s *Service) UpdateStock(ctx context.Context, id int64, stock int) (*domain.Product, error) {
	if stock < 0 {
		return nil, domain.InvalidArgumentf("stock must not be negative")
	}
	p, err := s.repo.UpdateStock(ctx, id, stock)
	if err != nil {
		return nil, err
	}
	s.cacheProduct(ctx, p)
	s.evictCategories(ctx)
	return p, nil
}

// Delete removes the product when nothing references it; otherwise it only
// disables the product so order and cart history stays intact.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.repo.HasReferences(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		err = s.repo.Disable(ctx, id)
	} else {
		err = s.repo.Delete(ctx, id)
	}
	if err != nil {
		return err
	}
	if err := s.cache.Evict(ctx, cache.ProductIDKey(id)); err != nil {
		s.logger.Printf("product cache: evict error=%v", err)
	}
	s.evictCategories(ctx)
	return nil
}

func (s *Service) cacheProduct(ctx context.Context, p *domain.Product) {
	if err := s.cache.Put(ctx, cache.ProductIDKey(p.ID), p, cache.ProductTTL); err != nil {
		s.logger.Printf("product cache: put error=%v", err)
	}
}

func (s *Service) evictCategories(ctx context.Context) {
	if err := s.cache.EvictPrefix(ctx, cache.ProductCategoryPrefix); err != nil {
		s.logger.Printf("product cache: evict categories error=%v", err)
	}
}
