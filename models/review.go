package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ReviewID  string             `json:"reviewid" bson:"reviewid"`
	UserID    string             `json:"userid" bson:"userid"`
	ProductID string             `json:"productid" bson:"productid"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	MediaURLs []string           `json:"mediaUrls,omitempty" bson:"mediaUrls,omitempty"`

	// Computed once at submission time from the caller's Delivered orders;
	// later status changes do not rewrite it.
	IsVerifiedPurchase bool `json:"isVerifiedPurchase" bson:"isVerifiedPurchase"`

	UserName  string    `json:"userName,omitempty" bson:"-"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
