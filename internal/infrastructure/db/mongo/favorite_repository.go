package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

const favoriteCollection = "favorites"

// FavoriteRepository stores the customer↔animal relation. A compound
// unique index on (customer_id, animal_id) plus $setOnInsert upserts make
// Add idempotent and safe under concurrent duplicate calls without any
// read-then-write check.
type FavoriteRepository struct {
	coll *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{coll: db.Collection(favoriteCollection)}
}

type favoriteDoc struct {
	CustomerID primitive.ObjectID `bson:"customer_id"`
	AnimalID   primitive.ObjectID `bson:"animal_id"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (r *FavoriteRepository) Add(ctx context.Context, customerID, animalID string) error {
	cid, aid, err := parsePair(customerID, animalID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"customer_id": cid, "animal_id": aid}
	update := bson.M{"$setOnInsert": favoriteDoc{
		CustomerID: cid,
		AnimalID:   aid,
		CreatedAt:  time.Now().UTC(),
	}}
	_, err = r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, customerID, animalID string) error {
	cid, aid, err := parsePair(customerID, animalID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"customer_id": cid, "animal_id": aid}); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListAnimalIDs(ctx context.Context, customerID string) ([]string, error) {
	cid, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"customer_id": cid},
		options.Find().SetProjection(bson.M{"animal_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			AnimalID primitive.ObjectID `bson:"animal_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode favorite: %w", err)
		}
		ids = append(ids, doc.AnimalID.Hex())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}

func (r *FavoriteRepository) RemoveAllForAnimal(ctx context.Context, animalID string) error {
	aid, err := primitive.ObjectIDFromHex(animalID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"animal_id": aid}); err != nil {
		return fmt.Errorf("cascade favorites: %w", err)
	}
	return nil
}

// EnsureIndexes creates the compound unique index that backs Add's
// idempotence guarantee.
func (r *FavoriteRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customer_id", Value: 1}, {Key: "animal_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "animal_id", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure favorite indexes: %w", err)
	}
	return nil
}

func parsePair(customerID, animalID string) (primitive.ObjectID, primitive.ObjectID, error) {
	cid, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, domain.ErrInvalidID
	}
	aid, err := primitive.ObjectIDFromHex(animalID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, domain.ErrInvalidID
	}
	return cid, aid, nil
}
