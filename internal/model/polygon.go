package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPolygonColor = "#FF0000"
	DefaultPolygonTag   = "none"
)

// Polygon is a stored shape: geographic ring coordinates plus the
// social metadata (likes, reviews) attached by submitters.
type Polygon struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Coordinates [][][]float64      `bson:"coordinates" json:"coordinates"`
	Description string             `bson:"description" json:"description"`
	Color       string             `bson:"color" json:"color"`
	Area        float64            `bson:"area" json:"area"`
	Date        time.Time          `bson:"date" json:"date"`
	Reviews     []string           `bson:"reviews" json:"reviews"`
	Likes       int64              `bson:"likes" json:"likes"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Tag         string             `bson:"tag" json:"tag"`
}

func (Polygon) CollectionName() string {
	return "polygons"
}
