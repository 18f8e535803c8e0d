package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserAccount holds a registered account. The password is stored only
// as a bcrypt hash and is never serialized to JSON.
type UserAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	DateOfBirth  *time.Time         `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	IsAdmin      bool               `bson:"isAdmin" json:"isAdmin"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

func (UserAccount) CollectionName() string {
	return "users"
}

// UserProfile is the public view of an account returned by the
// signup, user-lookup and me endpoints.
type UserProfile struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	DateOfBirth *time.Time         `json:"dateOfBirth,omitempty"`
}

func (u *UserAccount) Profile() UserProfile {
	return UserProfile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
	}
}

// Principal identifies the authenticated caller for token-protected
// routes.
type Principal struct {
	UserID string
}
