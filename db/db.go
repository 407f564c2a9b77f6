package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection    *mongo.Collection
	ProductCollection *mongo.Collection
	OrderCollection   *mongo.Collection
	ReviewCollection  *mongo.Collection
	Client            *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("patakha")
	UserCollection = database.Collection("users")
	ProductCollection = database.Collection("products")
	OrderCollection = database.Collection("orders")
	ReviewCollection = database.Collection("reviews")
}
