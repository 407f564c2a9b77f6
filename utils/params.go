package utils

import (
	"context"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParsePagination reads ?page= and ?limit= into skip/limit values.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return (page - 1) * limit, limit
}

// ParseSort maps a ?sort= value through allowed, falling back to def.
func ParseSort(sortParam string, def bson.D, allowed map[string]bson.D) bson.D {
	if sortParam == "" {
		return def
	}
	if s, ok := allowed[sortParam]; ok {
		return s
	}
	return def
}

// FindAndDecode runs a Find and decodes the cursor into a slice of T.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
