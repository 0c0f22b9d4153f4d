package service

import (
	"context"
	"testing"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

type stubFavoriteRepo struct {
	pairs   map[string]map[string]bool // customerID → animalID → present
	removed []string                   // animal ids passed to RemoveAllForAnimal
}

func newStubFavoriteRepo() *stubFavoriteRepo {
	return &stubFavoriteRepo{pairs: make(map[string]map[string]bool)}
}

func (r *stubFavoriteRepo) Add(_ context.Context, customerID, animalID string) error {
	if r.pairs[customerID] == nil {
		r.pairs[customerID] = make(map[string]bool)
	}
	r.pairs[customerID][animalID] = true
	return nil
}

func (r *stubFavoriteRepo) Remove(_ context.Context, customerID, animalID string) error {
	delete(r.pairs[customerID], animalID)
	return nil
}

func (r *stubFavoriteRepo) ListAnimalIDs(_ context.Context, customerID string) ([]string, error) {
	var ids []string
	for id := range r.pairs[customerID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *stubFavoriteRepo) RemoveAllForAnimal(_ context.Context, animalID string) error {
	r.removed = append(r.removed, animalID)
	for _, set := range r.pairs {
		delete(set, animalID)
	}
	return nil
}

type stubAnimalRepo struct {
	animals map[string]domain.Animal
	deleted []string
}

func newStubAnimalRepo() *stubAnimalRepo {
	return &stubAnimalRepo{animals: make(map[string]domain.Animal)}
}

func (r *stubAnimalRepo) Create(_ context.Context, animal *domain.Animal) (*domain.Animal, error) {
	a := *animal
	if a.ID == "" {
		a.ID = a.Name
	}
	r.animals[a.ID] = a
	return &a, nil
}

func (r *stubAnimalRepo) FindByID(_ context.Context, id string) (*domain.Animal, error) {
	a, ok := r.animals[id]
	if !ok {
		return nil, domain.ErrAnimalNotFound
	}
	return &a, nil
}

func (r *stubAnimalRepo) FindAll(_ context.Context) ([]domain.Animal, error) {
	out := []domain.Animal{}
	for _, a := range r.animals {
		out = append(out, a)
	}
	return out, nil
}

func (r *stubAnimalRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Animal, error) {
	out := []domain.Animal{}
	for _, id := range ids {
		if a, ok := r.animals[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAnimalRepo) Update(_ context.Context, id string, patch *domain.AnimalPatch) (*domain.Animal, error) {
	a, ok := r.animals[id]
	if !ok {
		return nil, domain.ErrAnimalNotFound
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	r.animals[id] = a
	return &a, nil
}

func (r *stubAnimalRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.animals[id]; !ok {
		return domain.ErrAnimalNotFound
	}
	delete(r.animals, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func TestFavoriteService_ListJoinsAnimals(t *testing.T) {
	favs := newStubFavoriteRepo()
	animals := newStubAnimalRepo()
	_, _ = animals.Create(context.Background(), &domain.Animal{ID: "a1", Name: "Luna", Breed: "Lab"})
	_, _ = animals.Create(context.Background(), &domain.Animal{ID: "a2", Name: "Scout", Breed: "Collie"})

	svc := NewFavoriteService(favs, animals)
	if err := svc.Add(context.Background(), "c1", "a1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	listed, err := svc.ListAnimals(context.Background(), "c1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != "a1" {
		t.Fatalf("unexpected listing: %+v", listed)
	}
}

func TestFavoriteService_EmptyListIsNotNil(t *testing.T) {
	svc := NewFavoriteService(newStubFavoriteRepo(), newStubAnimalRepo())

	listed, err := svc.ListAnimals(context.Background(), "c1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if listed == nil || len(listed) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", listed)
	}
}

func TestFavoriteService_RemoveAbsentPairSucceeds(t *testing.T) {
	svc := NewFavoriteService(newStubFavoriteRepo(), newStubAnimalRepo())
	if err := svc.Remove(context.Background(), "c1", "never-added"); err != nil {
		t.Fatalf("remove of absent pair must succeed, got %v", err)
	}
}
