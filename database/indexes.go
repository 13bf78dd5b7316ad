package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes creates necessary database indexes
func CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("Creating database indexes...")

	// Users collection indexes
	usersCollection := GetCollection(UsersCollection)
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	// Folders collection indexes. The unique compound index on
	// (owner, parent, name) is the authority for sibling-name uniqueness:
	// the application's check-then-insert is not atomic, so a concurrent
	// duplicate create is rejected here and surfaced as a conflict.
	foldersCollection := GetCollection(FoldersCollection)
	folderIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "parent", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "parent", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	if _, err := foldersCollection.Indexes().CreateMany(ctx, folderIndexes); err != nil {
		return fmt.Errorf("failed to create folder indexes: %v", err)
	}

	// Images collection indexes
	imagesCollection := GetCollection(ImagesCollection)
	imageIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "folder", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "name", Value: 1}},
		},
	}

	if _, err := imagesCollection.Indexes().CreateMany(ctx, imageIndexes); err != nil {
		return fmt.Errorf("failed to create image indexes: %v", err)
	}

	// OTP collection indexes
	otpsCollection := GetCollection(OTPsCollection)
	otpIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	if _, err := otpsCollection.Indexes().CreateMany(ctx, otpIndexes); err != nil {
		return fmt.Errorf("failed to create OTP indexes: %v", err)
	}

	log.Println("Database indexes created successfully")
	return nil
}
