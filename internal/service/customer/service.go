package customer

import (
	"context"
	"io"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/alejandrorivera22/ecom-cart/internal/cache"
	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	custrepo "github.com/alejandrorivera22/ecom-cart/internal/repository/customer"
)

// PageSize is the fixed page size for customer listings.
const PageSize = 5

// sortFields are the fields customer listings may be sorted by.
var sortFields = map[string]bool{
	"username": true,
	"email":    true,
}

// Service handles customer accounts: registration, lookup, role grants and
// the delete-or-disable rule.
type Service struct {
	repo   custrepo.Repository
	cache  cache.Cache
	logger *log.Logger
}

// New creates a Service. A nil cache disables caching.
func New(repo custrepo.Repository, c cache.Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if c == nil {
		c = cache.NewMemory()
	}
	return &Service{repo: repo, cache: c, logger: logger}
}

// CreateInput captures the fields expected by registration.
type CreateInput struct {
	Username string `json:"username" binding:"required,min=5,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5,max=40"`
}

// UpdateInput captures a customer update. An empty password keeps the
// current one.
type UpdateInput struct {
	Username string `json:"username" binding:"required,min=5,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=5,max=40"`
}

// Create registers a new customer with the base CUSTOMER role.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if taken, err := s.repo.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.InvalidArgumentf("username already in use: %s", username)
	}
	if taken, err := s.repo.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.InvalidArgumentf("email already in use: %s", email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, custrepo.CreateInput{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	})
	if err != nil {
		return nil, err
	}
	s.cacheCustomer(ctx, c)
	return c, nil
}

// FindByID returns an enabled customer by id.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var cached domain.Customer
	if hit, _ := s.cache.Get(ctx, cache.CustomerIDKey(id), &cached); hit {
		return &cached, nil
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Enabled {
		return nil, domain.NotEnabled(c.Username)
	}
	s.cacheCustomer(ctx, c)
	return c, nil
}

// FindByUsername returns an enabled customer by username.
func (s *Service) FindByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	var cached domain.Customer
	if hit, _ := s.cache.Get(ctx, cache.CustomerUsernameKey(username), &cached); hit {
		return &cached, nil
	}
	c, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !c.Enabled {
		return nil, domain.NotEnabled(c.Username)
	}
	s.cacheCustomer(ctx, c)
	return c, nil
}

// FindByEmail returns an enabled customer by email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var cached domain.Customer
	if hit, _ := s.cache.Get(ctx, cache.CustomerEmailKey(strings.ToLower(email)), &cached); hit {
		return &cached, nil
	}
	c, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !c.Enabled {
		return nil, domain.NotEnabled(c.Username)
	}
	s.cacheCustomer(ctx, c)
	return c, nil
}

// Authenticate returns the customer matching username regardless of cache
// state; login must always see the stored password hash.
func (s *Service) Authenticate(ctx context.Context, username string) (*domain.Customer, error) {
	c, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !c.Enabled {
		return nil, domain.NotEnabled(c.Username)
	}
	return c, nil
}

// ReadAll returns one page of enabled customers.
func (s *Service) ReadAll(ctx context.Context, page int, sortBy string, desc bool) ([]domain.Customer, int64, error) {
	if sortBy != "" && !sortFields[sortBy] {
		return nil, 0, domain.InvalidArgumentf("Invalid field: %s", sortBy)
	}
	return s.repo.ListActive(ctx, custrepo.ListInput{Page: page, Size: PageSize, SortBy: sortBy, Desc: desc})
}

// FindDisabled lists every disabled customer.
func (s *Service) FindDisabled(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListDisabled(ctx)
}

// Update replaces the customer's username, email and optionally password.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Customer, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if username != current.Username {
		if taken, err := s.repo.ExistsByUsername(ctx, username); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.InvalidArgumentf("username already in use: %s", username)
		}
	}
	if email != current.Email {
		if taken, err := s.repo.ExistsByEmail(ctx, email); err != nil {
			return nil, err
		} else if taken {
			return nil, domain.InvalidArgumentf("email already in use: %s", email)
		}
	}

	hash := current.PasswordHash
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(hashed)
	}

	updated, err := s.repo.Update(ctx, id, custrepo.UpdateInput{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	s.evictCustomer(ctx, current)
	s.cacheCustomer(ctx, updated)
	return updated, nil
}

// UpdateByUsername resolves the username and applies Update.
func (s *Service) UpdateByUsername(ctx context.Context, username string, in UpdateInput) (*domain.Customer, error) {
	current, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, current.ID, in)
}

// AddRole grants an additional role to the customer.
func (s *Service) AddRole(ctx context.Context, customerID int64, roleName string) (*domain.Customer, error) {
	roleName = strings.ToUpper(strings.TrimSpace(roleName))
	if !domain.ValidRole(roleName) {
		return nil, domain.InvalidArgumentf("Invalid role: %s", roleName)
	}
	current, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddRole(ctx, customerID, roleName); err != nil {
		return nil, err
	}
	s.evictCustomer(ctx, current)
	updated, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	s.cacheCustomer(ctx, updated)
	return updated, nil
}

// Delete removes the customer when it has no orders; otherwise it only
// disables the account so order history stays intact.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hasOrders, err := s.repo.HasOrders(ctx, id)
	if err != nil {
		return err
	}
	if hasOrders {
		err = s.repo.Disable(ctx, id)
	} else {
		err = s.repo.Delete(ctx, id)
	}
	if err != nil {
		return err
	}
	s.evictCustomer(ctx, current)
	return nil
}

func (s *Service) cacheCustomer(ctx context.Context, c *domain.Customer) {
	for _, key := range customerKeys(c) {
		if err := s.cache.Put(ctx, key, c, cache.CustomerTTL); err != nil {
			s.logger.Printf("customer cache: put %s error=%v", key, err)
		}
	}
}

func (s *Service) evictCustomer(ctx context.Context, c *domain.Customer) {
	if err := s.cache.Evict(ctx, customerKeys(c)...); err != nil {
		s.logger.Printf("customer cache: evict error=%v", err)
	}
}

func customerKeys(c *domain.Customer) []string {
	return []string{
		cache.CustomerIDKey(c.ID),
		cache.CustomerUsernameKey(c.Username),
		cache.CustomerEmailKey(c.Email),
	}
}
