package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

// Account email uniqueness is enforced here rather than by a
// check-then-insert in the signup path; concurrent duplicate signups
// lose the race at the storage engine.
var indexSpecs = []indexSpec{
	{
		collection: "users",
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	},
	{
		collection: "polygons",
		model: mongo.IndexModel{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
	},
	{
		collection: "polygons",
		model: mongo.IndexModel{
			Keys: bson.D{{Key: "tag", Value: 1}},
		},
	},
}

func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for _, spec := range indexSpecs {
		if _, err := database.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model); err != nil {
			return fmt.Errorf("create index on %s: %w", spec.collection, err)
		}
	}
	return nil
}
