package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"polygon-service/internal/model"
)

type PolygonRepository struct {
	col *mongo.Collection
}

func NewPolygonRepository(database *mongo.Database) *PolygonRepository {
	return &PolygonRepository{col: database.Collection(model.Polygon{}.CollectionName())}
}

func (r *PolygonRepository) Insert(ctx context.Context, polygon *model.Polygon) error {
	if polygon.ID.IsZero() {
		polygon.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, polygon)
	return err
}

func (r *PolygonRepository) FindAll(ctx context.Context) ([]model.Polygon, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	polygons := []model.Polygon{}
	if err := cursor.All(ctx, &polygons); err != nil {
		return nil, err
	}
	return polygons, nil
}

func (r *PolygonRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Polygon, error) {
	var polygon model.Polygon
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&polygon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &polygon, nil
}

// FindByField matches polygons whose field equals value. Used for the
// email and tag lookups.
func (r *PolygonRepository) FindByField(ctx context.Context, field, value string) ([]model.Polygon, error) {
	cursor, err := r.col.Find(ctx, bson.M{field: value})
	if err != nil {
		return nil, err
	}
	polygons := []model.Polygon{}
	if err := cursor.All(ctx, &polygons); err != nil {
		return nil, err
	}
	return polygons, nil
}

// PolygonUpdate carries the fields of a partial update; nil fields are
// left untouched.
type PolygonUpdate struct {
	Coordinates [][][]float64
	Description *string
	Color       *string
	Area        *float64
	Date        *time.Time
	Reviews     []string
	Likes       *int64
	Name        *string
	Email       *string
	Tag         *string
}

func (u PolygonUpdate) set() bson.M {
	set := bson.M{}
	if u.Coordinates != nil {
		set["coordinates"] = u.Coordinates
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Color != nil {
		set["color"] = *u.Color
	}
	if u.Area != nil {
		set["area"] = *u.Area
	}
	if u.Date != nil {
		set["date"] = *u.Date
	}
	if u.Reviews != nil {
		set["reviews"] = u.Reviews
	}
	if u.Likes != nil {
		set["likes"] = *u.Likes
	}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.Tag != nil {
		set["tag"] = *u.Tag
	}
	return set
}

// UpdateByID applies a partial update and returns the record as stored
// afterwards.
func (r *PolygonRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update PolygonUpdate) (*model.Polygon, error) {
	set := update.set()
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var polygon model.Polygon
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&polygon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &polygon, nil
}

// IncrementLikes bumps the like counter in a single atomic update, so
// concurrent likes are never lost.
func (r *PolygonRepository) IncrementLikes(ctx context.Context, id primitive.ObjectID) (*model.Polygon, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var polygon model.Polygon
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}}, opts).Decode(&polygon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &polygon, nil
}

// AppendReview pushes a review onto the end of the list atomically;
// order of arrival is the stored order.
func (r *PolygonRepository) AppendReview(ctx context.Context, id primitive.ObjectID, review string) (*model.Polygon, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var polygon model.Polygon
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"reviews": review}}, opts).Decode(&polygon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &polygon, nil
}

// DeleteByID removes the record and returns it as it was stored.
func (r *PolygonRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*model.Polygon, error) {
	var polygon model.Polygon
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&polygon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &polygon, nil
}
