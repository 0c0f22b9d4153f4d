package ports

import (
	"context"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

type AnimalService interface {
	List(ctx context.Context) ([]domain.Animal, error)
	Get(ctx context.Context, id string) (*domain.Animal, error)
	Create(ctx context.Context, animal *domain.Animal) (*domain.Animal, error)
	Update(ctx context.Context, id string, patch *domain.AnimalPatch) (*domain.Animal, error)
	Delete(ctx context.Context, id string) error
}
