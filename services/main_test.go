package services

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"fmt"

	"filehive/database"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoReady reports whether the throwaway MongoDB container came up; tests
// that need a live database skip when it did not.
var mongoReady bool

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := runMongoContainer(ctx)
	if err != nil {
		log.Printf("mongo container unavailable, database-backed tests will be skipped: %s", err)
		os.Exit(m.Run())
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("failed to get connection string: %s", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to test database: %s", err)
	}

	database.SetClient(client)
	database.SetDatabase(client.Database("filehive_test"))
	if err := database.CreateIndexes(); err != nil {
		log.Fatalf("failed to create indexes: %s", err)
	}
	mongoReady = true

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate mongo container: %s", err)
	}
	os.Exit(code)
}

// runMongoContainer wraps mongodb.Run: testcontainers panics instead of
// returning an error when no Docker host can be found, so convert that panic
// into an error to reach the existing skip path above.
func runMongoContainer(ctx context.Context) (c *mongodb.MongoDBContainer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()
	return mongodb.Run(ctx, "mongo:7")
}

func requireMongo(t *testing.T) {
	t.Helper()
	if !mongoReady {
		t.Skip("mongo test container not available")
	}
}
