package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pawhaven/adoption-api/internal/core/domain"
)

const animalCollection = "animals"

type AnimalRepository struct {
	coll *mongo.Collection
}

func NewAnimalRepository(db *mongo.Database) *AnimalRepository {
	return &AnimalRepository{coll: db.Collection(animalCollection)}
}

type animalDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Breed       string             `bson:"breed"`
	Sex         string             `bson:"sex,omitempty"`
	AgeWeeks    *int               `bson:"age_weeks,omitempty"`
	RescueType  string             `bson:"rescue_type,omitempty"`
	Status      string             `bson:"status"`
	Description string             `bson:"description,omitempty"`
	Location    *domain.GeoPoint   `bson:"location,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *AnimalRepository) Create(ctx context.Context, animal *domain.Animal) (*domain.Animal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := animalToDoc(animal)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert animal: %w", err)
	}

	created := *animal
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AnimalRepository) FindByID(ctx context.Context, id string) (*domain.Animal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc animalDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnimalNotFound
		}
		return nil, fmt.Errorf("find animal: %w", err)
	}
	return docToAnimal(&doc), nil
}

func (r *AnimalRepository) FindAll(ctx context.Context) ([]domain.Animal, error) {
	return r.find(ctx, bson.M{})
}

func (r *AnimalRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Animal, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		oids = append(oids, oid)
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *AnimalRepository) find(ctx context.Context, filter bson.M) ([]domain.Animal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find animals: %w", err)
	}
	defer cur.Close(ctx)

	animals := []domain.Animal{}
	for cur.Next(ctx) {
		var doc animalDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode animal: %w", err)
		}
		animals = append(animals, *docToAnimal(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find animals: %w", err)
	}
	return animals, nil
}

func (r *AnimalRepository) Update(ctx context.Context, id string, patch *domain.AnimalPatch) (*domain.Animal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Breed != nil {
		set["breed"] = *patch.Breed
	}
	if patch.Sex != nil {
		set["sex"] = *patch.Sex
	}
	if patch.AgeWeeks != nil {
		set["age_weeks"] = *patch.AgeWeeks
	}
	if patch.RescueType != nil {
		set["rescue_type"] = *patch.RescueType
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Location != nil {
		set["location"] = patch.Location
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc animalDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnimalNotFound
		}
		return nil, fmt.Errorf("update animal: %w", err)
	}
	return docToAnimal(&doc), nil
}

func (r *AnimalRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete animal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAnimalNotFound
	}
	return nil
}

// EnsureIndexes creates the listing and lookup indexes.
func (r *AnimalRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "breed", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "rescue_type", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure animal indexes: %w", err)
	}
	return nil
}

func animalToDoc(a *domain.Animal) *animalDoc {
	return &animalDoc{
		Name:        a.Name,
		Breed:       a.Breed,
		Sex:         a.Sex,
		AgeWeeks:    a.AgeWeeks,
		RescueType:  a.RescueType,
		Status:      a.Status,
		Description: a.Description,
		Location:    a.Location,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func docToAnimal(doc *animalDoc) *domain.Animal {
	return &domain.Animal{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Breed:       doc.Breed,
		Sex:         doc.Sex,
		AgeWeeks:    doc.AgeWeeks,
		RescueType:  doc.RescueType,
		Status:      doc.Status,
		Description: doc.Description,
		Location:    doc.Location,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
