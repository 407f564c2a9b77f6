package reviews

import (
	"context"

	"patakha/db"

	"go.mongodb.org/mongo-driver/bson"
)

const recomputeAttempts = 2

// AverageRating is the exact arithmetic mean of the given ratings, 0 for
// an empty set. The product aggregate is always recomputed from the full
// review set rather than maintained incrementally, so it cannot drift.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// recomputeProductRating recomputes rating and numReviews from all of
// the product's reviews and writes both onto the product. Two concurrent
// review writes can interleave an aggregate read with the other's
// insert; the count is re-checked after the write and the recompute runs
// once more when the set moved underneath it.
func recomputeProductRating(ctx context.Context, productID string) error {
	var lastErr error
	for attempt := 0; attempt < recomputeAttempts; attempt++ {
		avg, count, err := aggregateRating(ctx, productID)
		if err != nil {
			return err
		}

		_, err = db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": productID},
			bson.M{"$set": bson.M{"rating": avg, "numReviews": count}},
		)
		if err != nil {
			lastErr = err
			continue
		}

		after, err := db.ReviewCollection.CountDocuments(ctx, bson.M{"productid": productID})
		if err != nil || after == count {
			return err
		}
		// Set changed while we were writing; go around once more.
	}
	return lastErr
}

func aggregateRating(ctx context.Context, productID string) (avg float64, count int64, err error) {
	pipeline := []bson.M{
		{"$match": bson.M{"productid": productID}},
		{"$group": bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := db.ReviewCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Avg, results[0].Count, nil
}
