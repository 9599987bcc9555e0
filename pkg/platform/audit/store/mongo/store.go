package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	audit "hrcc/pkg/platform/audit"
)

// Collection is where audit events live.
const Collection = "audit_events"

// Store implements audit.Store on a MongoDB collection.
type Store struct {
	coll *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(Collection)}
}

// Append inserts the event. Event ids are generated by the publisher, so a
// replayed event fails with a duplicate key instead of being stored twice.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if _, err := s.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByActor returns the actor's events oldest first.
func (s *Store) ListByActor(ctx context.Context, actorID string) ([]audit.Event, error) {
	cur, err := s.coll.Find(ctx, bson.D{{Key: "actorId", Value: actorID}},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	var events []audit.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode audit events: %w", err)
	}
	return events, nil
}

// EnsureIndexes adds the actor lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "actorId", Value: 1}, {Key: "timestamp", Value: 1}},
		Options: options.Index().SetName("actor_timestamp"),
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}
