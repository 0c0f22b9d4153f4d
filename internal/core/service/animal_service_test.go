package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

func TestAnimalService_CreateNormalizes(t *testing.T) {
	animals := newStubAnimalRepo()
	svc := NewAnimalService(animals, newStubFavoriteRepo(), zerolog.Nop())

	created, err := svc.Create(context.Background(), &domain.Animal{
		Name:  "  Luna  ",
		Breed: " Labrador ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Luna" || created.Breed != "Labrador" {
		t.Fatalf("expected trimmed fields, got %q/%q", created.Name, created.Breed)
	}
	if created.Status != domain.StatusAvailable {
		t.Fatalf("expected default status, got %q", created.Status)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestAnimalService_CreateRequiresNameAndBreed(t *testing.T) {
	svc := NewAnimalService(newStubAnimalRepo(), newStubFavoriteRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), &domain.Animal{Name: "  ", Breed: "Lab"}); err != domain.ErrAnimalInvalid {
		t.Fatalf("expected ErrAnimalInvalid, got %v", err)
	}
}

func TestAnimalService_UpdateRejectsBlankedRequiredFields(t *testing.T) {
	animals := newStubAnimalRepo()
	_, _ = animals.Create(context.Background(), &domain.Animal{ID: "a1", Name: "Luna", Breed: "Lab"})
	svc := NewAnimalService(animals, newStubFavoriteRepo(), zerolog.Nop())

	blank := "   "
	if _, err := svc.Update(context.Background(), "a1", &domain.AnimalPatch{Name: &blank}); err != domain.ErrAnimalInvalid {
		t.Fatalf("expected ErrAnimalInvalid, got %v", err)
	}
}

func TestAnimalService_DeleteCascadesFavorites(t *testing.T) {
	animals := newStubAnimalRepo()
	favs := newStubFavoriteRepo()
	_, _ = animals.Create(context.Background(), &domain.Animal{ID: "a1", Name: "Luna", Breed: "Lab"})
	_ = favs.Add(context.Background(), "c1", "a1")
	_ = favs.Add(context.Background(), "c2", "a1")

	svc := NewAnimalService(animals, favs, zerolog.Nop())
	if err := svc.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(favs.removed) != 1 || favs.removed[0] != "a1" {
		t.Fatalf("expected cascade for a1, got %v", favs.removed)
	}
	for customer, set := range favs.pairs {
		if set["a1"] {
			t.Fatalf("favorite row for %s survived the cascade", customer)
		}
	}
}

func TestAnimalService_DeleteUnknown(t *testing.T) {
	svc := NewAnimalService(newStubAnimalRepo(), newStubFavoriteRepo(), zerolog.Nop())
	if err := svc.Delete(context.Background(), "missing"); err != domain.ErrAnimalNotFound {
		t.Fatalf("expected ErrAnimalNotFound, got %v", err)
	}
}
