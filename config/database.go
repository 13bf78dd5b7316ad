package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"filehive/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DatabaseManager handles database initialization and management
type DatabaseManager struct {
	client   *mongo.Client
	database *mongo.Database
	config   *Config
}

// NewDatabaseManager creates a new database manager
func NewDatabaseManager(cfg *Config) *DatabaseManager {
	return &DatabaseManager{
		config: cfg,
	}
}

// Initialize initializes the database connection
func (dm *DatabaseManager) Initialize() error {
	log.Println("Initializing database connection...")

	clientOptions := options.Client().
		ApplyURI(dm.config.MongoURI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(30 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetSocketTimeout(10 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true)

	if dm.config.IsDevelopment() {
		clientOptions.SetLoggerOptions(&options.LoggerOptions{
			ComponentLevels: map[options.LogComponent]options.LogLevel{
				options.LogComponentCommand: options.LogLevelDebug,
			},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	dm.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err = dm.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	dm.database = dm.client.Database(dm.config.DBName)

	// Publish the connection for the database package accessors
	database.SetClient(dm.client)
	database.SetDatabase(dm.database)

	log.Printf("Successfully connected to MongoDB database: %s", dm.config.DBName)
	return nil
}

// SetupDatabase performs initial database setup
func (dm *DatabaseManager) SetupDatabase() error {
	log.Println("Setting up database...")

	if err := database.CreateIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %v", err)
	}

	log.Println("Database setup completed successfully")
	return nil
}

// HealthCheck performs a database health check
func (dm *DatabaseManager) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return dm.client.Ping(ctx, readpref.Primary())
}

// CleanupOldData removes expired records based on retention policies
func (dm *DatabaseManager) CleanupOldData() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Expired OTP codes
	otps := dm.database.Collection(database.OTPsCollection)
	result, err := otps.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": time.Now()},
	})
	if err != nil {
		log.Printf("Warning: Failed to cleanup expired OTP codes: %v", err)
	} else if result.DeletedCount > 0 {
		log.Printf("Cleaned up %d expired OTP codes", result.DeletedCount)
	}

	return nil
}

// Close closes the database connection
func (dm *DatabaseManager) Close() error {
	if dm.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := dm.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to disconnect from MongoDB: %v", err)
		}
		log.Println("Disconnected from MongoDB")
	}
	return nil
}

// GetClient returns the MongoDB client
func (dm *DatabaseManager) GetClient() *mongo.Client {
	return dm.client
}

// GetDatabase returns the MongoDB database
func (dm *DatabaseManager) GetDatabase() *mongo.Database {
	return dm.database
}
