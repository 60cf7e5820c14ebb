package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

const collectionPets = "pets"

type PetRepository struct {
	col *mongo.Collection
}

func NewPetRepository(db *mongo.Database) *PetRepository {
	return &PetRepository{col: db.Collection(collectionPets)}
}

func (r *PetRepository) Create(ctx context.Context, p *domain.Pet) error {
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

func (r *PetRepository) FindByID(ctx context.Context, id string) (*domain.Pet, error) {
	var p domain.Pet
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPetNotFound
		}
		return nil, fmt.Errorf("find pet: %w", err)
	}
	return &p, nil
}

func (r *PetRepository) List(ctx context.Context) ([]*domain.Pet, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer cursor.Close(ctx)

	var pets []*domain.Pet
	for cursor.Next(ctx) {
		var p domain.Pet
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode pet: %w", err)
		}
		pets = append(pets, &p)
	}
	return pets, cursor.Err()
}

func (r *PetRepository) Update(ctx context.Context, p *domain.Pet) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPetNotFound
	}
	return nil
}

func (r *PetRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPetNotFound
	}
	return nil
}

// Reserve flips the pet from available to reserved in a single conditional
// update. The status filter makes concurrent reservations of the same pet
// mutually exclusive: only one update can match.
func (r *PetRepository) Reserve(ctx context.Context, id string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(domain.PetAvailable)},
		bson.M{"$set": bson.M{"status": string(domain.PetReserved)}},
	)
	if err != nil {
		return fmt.Errorf("reserve pet: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("reserve pet: %w", err)
		}
		if n == 0 {
			return domain.ErrPetNotFound
		}
		return domain.ErrPetUnavailable
	}
	return nil
}

// Release reverts a reserved pet to available and clears its owner.
func (r *PetRepository) Release(ctx context.Context, id string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"status": string(domain.PetAvailable)},
			"$unset": bson.M{"owner_id": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("release pet: %w", err)
	}
	return nil
}

// MarkSold sets the pet to sold with the buying client as owner.
func (r *PetRepository) MarkSold(ctx context.Context, id string, ownerID string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(domain.PetSold), "owner_id": ownerID}},
	)
	if err != nil {
		return fmt.Errorf("mark pet sold: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPetNotFound
	}
	return nil
}

func (r *PetRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the lookup indexes for seller and status queries.
func (r *PetRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

var _ ports.PetRepository = (*PetRepository)(nil)
