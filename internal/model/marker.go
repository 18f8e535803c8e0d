package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Marker is a single-point geographic annotation. Coordinates hold
// exactly one [lat, lng] pair.
type Marker struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Coordinates []float64          `bson:"coordinates" json:"coordinates"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
}

func (Marker) CollectionName() string {
	return "markers"
}
