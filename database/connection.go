package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client   *mongo.Client
	database *mongo.Database
)

// SetClient sets the global MongoDB client (called by DatabaseManager)
func SetClient(c *mongo.Client) {
	client = c
}

// SetDatabase sets the global MongoDB database (called by DatabaseManager)
func SetDatabase(db *mongo.Database) {
	database = db
}

// GetClient returns the MongoDB client
func GetClient() *mongo.Client {
	return client
}

// GetDatabase returns the MongoDB database
func GetDatabase() *mongo.Database {
	return database
}

// GetCollection returns a MongoDB collection
func GetCollection(collectionName string) *mongo.Collection {
	if database == nil {
		panic(fmt.Sprintf("database not initialized when trying to get collection: %s. Make sure DatabaseManager.Initialize() is called first.", collectionName))
	}
	return database.Collection(collectionName)
}

// Ping checks the database connection
func Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if client == nil {
		return fmt.Errorf("database client not initialized")
	}

	return client.Ping(ctx, readpref.Primary())
}
