package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// LoadEnv loads environment variables from the .env file
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Connect opens the MongoDB client and verifies the connection.
func Connect(ctx context.Context) (*mongo.Client, error) {
	uri := GetEnv("MONGODB_URI", "mongodb://localhost:27017")

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

// OpenCollection returns a handle to a collection in the application database.
func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	dbName := GetEnv("DB_NAME", "restaurant")
	return client.Database(dbName).Collection(collectionName)
}
