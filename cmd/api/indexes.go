package main

import (
	"context"

	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/pawmarket/petstore-api/internal/infrastructure/db/mongo"
)

// ensureIndexes creates all collection indexes at startup so lookups and
// uniqueness constraints are in place before the first request.
func ensureIndexes(ctx context.Context, db *driver.Database) error {
	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewProductRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewPetRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongo.NewOrderRepository(db).EnsureIndexes(ctx)
}
