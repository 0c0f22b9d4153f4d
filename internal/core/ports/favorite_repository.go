package ports

import "context"

// FavoriteRepository persists the customer↔animal favorites relation.
// Identifier validity is checked before any datastore call; malformed ids
// fail with domain.ErrInvalidID.
type FavoriteRepository interface {
	// Add is an idempotent upsert: re-adding an existing pair succeeds
	// without creating a duplicate row.
	Add(ctx context.Context, customerID, animalID string) error
	// Remove deletes the pair if present; absence is not an error.
	Remove(ctx context.Context, customerID, animalID string) error
	ListAnimalIDs(ctx context.Context, customerID string) ([]string, error)
	// RemoveAllForAnimal cascades an animal deletion into the relation.
	RemoveAllForAnimal(ctx context.Context, animalID string) error
}
