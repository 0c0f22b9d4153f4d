package ports

import (
	"context"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

// AnimalRepository persists rescue animal records.
type AnimalRepository interface {
	Create(ctx context.Context, animal *domain.Animal) (*domain.Animal, error)
	FindByID(ctx context.Context, id string) (*domain.Animal, error)
	// FindAll returns all animals, newest first.
	FindAll(ctx context.Context) ([]domain.Animal, error)
	// FindByIDs returns the animals matching the given ids, newest first.
	// Missing ids are silently skipped.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Animal, error)
	// Update applies the patch and returns the updated record, or
	// domain.ErrAnimalNotFound.
	Update(ctx context.Context, id string, patch *domain.AnimalPatch) (*domain.Animal, error)
	Delete(ctx context.Context, id string) error
}
