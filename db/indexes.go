package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness constraints the order and review
// invariants lean on. Called once at startup; safe to call repeatedly.
func EnsureIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_email"),
	})
	if err != nil {
		return err
	}

	_, err = ProductCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "productid", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_productid"),
	})
	if err != nil {
		return err
	}

	// Order numbers double as UPI payment references; uniqueness is a
	// storage constraint, not a statistical hope.
	orderIdxs := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_order_number"),
		},
		{
			Keys: bson.D{{Key: "userid", Value: 1}, {Key: "idempotency_key", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_user_idempotency_key").
				SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "userid", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_orders_by_date"),
		},
	}
	if _, err = OrderCollection.Indexes().CreateMany(ctx, orderIdxs); err != nil {
		return err
	}

	reviewIdxs := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userid", Value: 1}, {Key: "productid", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user_product_review"),
		},
		{
			Keys:    bson.D{{Key: "productid", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("product_reviews_by_date"),
		},
	}
	_, err = ReviewCollection.Indexes().CreateMany(ctx, reviewIdxs)
	return err
}

// IsDuplicateKeyError reports whether err is a Mongo unique-index violation.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if we, ok := err.(mongo.WriteException); ok {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}
