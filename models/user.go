package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        string             `json:"userid" bson:"userid"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Password      string             `json:"-" bson:"password"`
	Role          string             `json:"role" bson:"role"`
	RefreshToken  string             `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time          `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time          `json:"-" bson:"last_login,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// UserSummary is the identity slice joined onto admin order listings and
// review listings. Nothing beyond id and display name leaves the server.
type UserSummary struct {
	UserID string `json:"userid" bson:"userid"`
	Name   string `json:"name" bson:"name"`
}
