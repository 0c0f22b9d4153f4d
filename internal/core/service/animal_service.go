package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawhaven/adoption-api/internal/core/domain"
	"github.com/pawhaven/adoption-api/internal/core/ports"
)

// AnimalService implements the admin-facing CRUD over animal records and
// the public listing.
type AnimalService struct {
	animals   ports.AnimalRepository
	favorites ports.FavoriteRepository
	log       zerolog.Logger
}

func NewAnimalService(animals ports.AnimalRepository, favorites ports.FavoriteRepository, log zerolog.Logger) *AnimalService {
	return &AnimalService{animals: animals, favorites: favorites, log: log}
}

func (s *AnimalService) List(ctx context.Context) ([]domain.Animal, error) {
	return s.animals.FindAll(ctx)
}

func (s *AnimalService) Get(ctx context.Context, id string) (*domain.Animal, error) {
	return s.animals.FindByID(ctx, id)
}

func (s *AnimalService) Create(ctx context.Context, animal *domain.Animal) (*domain.Animal, error) {
	if err := animal.Normalize(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	animal.CreatedAt = now
	animal.UpdatedAt = now
	return s.animals.Create(ctx, animal)
}

func (s *AnimalService) Update(ctx context.Context, id string, patch *domain.AnimalPatch) (*domain.Animal, error) {
	if err := patch.Normalize(); err != nil {
		return nil, err
	}
	return s.animals.Update(ctx, id, patch)
}

// Delete removes the animal and cascades into the favorites relation so
// no orphaned rows survive the record.
func (s *AnimalService) Delete(ctx context.Context, id string) error {
	if err := s.animals.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.favorites.RemoveAllForAnimal(ctx, id); err != nil {
		// The animal itself is gone; orphaned rows are inert until the
		// next delete of the same id. Log and report.
		s.log.Error().Err(err).Str("animal_id", id).Msg("favorite cascade failed")
		return err
	}
	return nil
}
