package service

import (
	"context"

	"github.com/pawhaven/adoption-api/internal/core/domain"
	"github.com/pawhaven/adoption-api/internal/core/ports"
)

// FavoriteService manages the customer↔animal favorites relation.
type FavoriteService struct {
	favorites ports.FavoriteRepository
	animals   ports.AnimalRepository
}

func NewFavoriteService(favorites ports.FavoriteRepository, animals ports.AnimalRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, animals: animals}
}

// Add favorites an animal. Re-adding an existing pair is a no-op.
func (s *FavoriteService) Add(ctx context.Context, customerID, animalID string) error {
	return s.favorites.Add(ctx, customerID, animalID)
}

// Remove unfavorites an animal. Removing an absent pair is a no-op.
func (s *FavoriteService) Remove(ctx context.Context, customerID, animalID string) error {
	return s.favorites.Remove(ctx, customerID, animalID)
}

// ListAnimals resolves the customer's favorite ids to animal records,
// newest first.
func (s *FavoriteService) ListAnimals(ctx context.Context, customerID string) ([]domain.Animal, error) {
	ids, err := s.favorites.ListAnimalIDs(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Animal{}, nil
	}
	return s.animals.FindByIDs(ctx, ids)
}
