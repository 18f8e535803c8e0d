package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"polygon-service/internal/model"
)

type MarkerRepository struct {
	col *mongo.Collection
}

func NewMarkerRepository(database *mongo.Database) *MarkerRepository {
	return &MarkerRepository{col: database.Collection(model.Marker{}.CollectionName())}
}

func (r *MarkerRepository) Insert(ctx context.Context, marker *model.Marker) error {
	if marker.ID.IsZero() {
		marker.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, marker)
	return err
}

func (r *MarkerRepository) FindAll(ctx context.Context) ([]model.Marker, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	markers := []model.Marker{}
	if err := cursor.All(ctx, &markers); err != nil {
		return nil, err
	}
	return markers, nil
}
