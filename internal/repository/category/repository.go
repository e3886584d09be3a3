package category

import (
	"context"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]domain.Category, error)
}
