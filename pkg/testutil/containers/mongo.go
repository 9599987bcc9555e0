//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoContainer wraps a testcontainers MongoDB instance.
type MongoContainer struct {
	Container testcontainers.Container
	URI       string
	Client    *mongo.Client
}

func startMongo(ctx context.Context) (*MongoContainer, error) {
	container, err := tcmongo.Run(ctx, "mongo:7")
	if err != nil {
		return nil, err
	}
	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		_ = container.Terminate(ctx)
		return nil, err
	}
	return &MongoContainer{Container: container, URI: uri, Client: client}, nil
}

// Database returns a fresh database for one suite. Drop it in TearDownSuite.
func (m *MongoContainer) Database(name string) *mongo.Database {
	return m.Client.Database(name)
}

// GetMongo returns the shared MongoDB container, starting it on first use.
func (m *Manager) GetMongo(t *testing.T) *MongoContainer {
	t.Helper()
	m.mongoOnce.Do(func() {
		m.mongo, m.mongoErr = startMongo(context.Background())
	})
	if m.mongoErr != nil {
		t.Fatalf("failed to start mongo container: %v", m.mongoErr)
	}
	return m.mongo
}
