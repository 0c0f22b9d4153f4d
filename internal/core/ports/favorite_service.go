package ports

import (
	"context"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

type FavoriteService interface {
	Add(ctx context.Context, customerID, animalID string) error
	Remove(ctx context.Context, customerID, animalID string) error
	// ListAnimals returns the favorited animal records, newest first.
	ListAnimals(ctx context.Context, customerID string) ([]domain.Animal, error)
}
