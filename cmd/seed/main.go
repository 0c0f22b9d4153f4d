// Command seed provisions the admin account and, when the collection is
// empty, a starter set of rescue animals. Admin provisioning happens only
// here; the API exposes no admin registration endpoint.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawhaven/adoption-api/internal/core/domain"
	"github.com/pawhaven/adoption-api/internal/infrastructure/config"
	mongodb "github.com/pawhaven/adoption-api/internal/infrastructure/db/mongo"
	"github.com/pawhaven/adoption-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer client.Disconnect(context.Background())

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	if err := seedAdmin(ctx, db, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}
	if err := seedAnimals(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("animal seed failed")
	}
}

func seedAdmin(ctx context.Context, db *mongo.Database, cfg *config.Config, log zerolog.Logger) error {
	accounts := mongodb.NewAccountRepository(db)

	username, err := domain.NormalizeUsername(cfg.Seed.AdminUsername)
	if err != nil {
		return err
	}
	if err := domain.ValidatePassword(cfg.Seed.AdminPassword); err != nil {
		return err
	}

	if _, err := accounts.FindByUsername(ctx, domain.KindAdmin, username); err == nil {
		log.Info().Str("username", username).Msg("admin already present")
		return nil
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	created, err := accounts.Create(ctx, domain.KindAdmin, &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	log.Info().Str("id", created.ID).Str("username", username).Msg("admin created")
	return nil
}

func seedAnimals(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	animals := mongodb.NewAnimalRepository(db)

	existing, err := animals.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("animals already present, skipping")
		return nil
	}

	now := time.Now().UTC()
	for _, a := range sampleAnimals() {
		a.CreatedAt = now
		a.UpdatedAt = now
		if err := a.Normalize(); err != nil {
			return err
		}
		created, err := animals.Create(ctx, &a)
		if err != nil {
			return err
		}
		log.Info().Str("id", created.ID).Str("name", created.Name).Msg("animal seeded")
	}
	return nil
}

func sampleAnimals() []domain.Animal {
	age := func(weeks int) *int { return &weeks }
	return []domain.Animal{
		{
			Name: "Luna", Breed: "Labrador Retriever", Sex: "Female",
			AgeWeeks: age(32), RescueType: "Water", Status: domain.StatusAvailable,
			Description: "Calm swimmer, great with kids.",
			Location:    domain.NewGeoPoint(-122.4194, 37.7749),
		},
		{
			Name: "Scout", Breed: "Border Collie", Sex: "Male",
			AgeWeeks: age(48), RescueType: "Mountain", Status: domain.StatusAvailable,
			Description: "High energy, needs space to run.",
			Location:    domain.NewGeoPoint(-105.2705, 40.0150),
		},
		{
			Name: "Biscuit", Breed: "Beagle", Sex: "Male",
			AgeWeeks: age(20), RescueType: "Disaster", Status: domain.StatusAvailable,
			Description: "Curious nose, settles quickly indoors.",
		},
		{
			Name: "Maple", Breed: "Golden Retriever", Sex: "Female",
			AgeWeeks: age(60), RescueType: "Water", Status: "Pending",
			Description: "Gentle senior, already house trained.",
			Location:    domain.NewGeoPoint(-73.9857, 40.7484),
		},
	}
}
