package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID   string             `json:"productid" bson:"productid"`
	Name        string             `json:"name" bson:"name"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Stock       int                `json:"stock" bson:"stock"`
	Images      []string           `json:"images,omitempty" bson:"images,omitempty"`
	Thumbnail   string             `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`

	// Rating and NumReviews are a derived cache written only by the
	// reviews package; never accept them from a client payload.
	Rating     float64 `json:"rating" bson:"rating"`
	NumReviews int     `json:"numReviews" bson:"numReviews"`

	CreatedBy string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
