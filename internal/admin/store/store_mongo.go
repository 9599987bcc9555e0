package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hrcc/internal/admin/models"
	platformmongo "hrcc/internal/platform/mongo"
	"hrcc/pkg/platform/sentinel"
)

// MongoAdminStore persists admins in the admins collection.
type MongoAdminStore struct {
	coll *mongo.Collection
}

func NewMongoAdminStore(db *mongo.Database) *MongoAdminStore {
	return &MongoAdminStore{coll: db.Collection(platformmongo.AdminsCollection)}
}

func (s *MongoAdminStore) Create(ctx context.Context, admin *models.Admin) error {
	if _, err := s.coll.InsertOne(ctx, admin); err != nil {
		if platformmongo.IsDuplicate(err) {
			return fmt.Errorf("admin %s: %w", admin.Username, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (s *MongoAdminStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Admin, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *MongoAdminStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.Admin, error) {
	return s.findOne(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "email", Value: strings.ToLower(email)}},
	}}})
}

func (s *MongoAdminStore) UpdateLastLogin(ctx context.Context, id bson.ObjectID, at time.Time) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: "lastLogin", Value: at}}}})
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *MongoAdminStore) SetActive(ctx context.Context, id bson.ObjectID, active bool) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: "isActive", Value: active}}}})
	if err != nil {
		return fmt.Errorf("set admin active: %w", err)
	}
	if res.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *MongoAdminStore) findOne(ctx context.Context, filter bson.D) (*models.Admin, error) {
	var admin models.Admin
	if err := s.coll.FindOne(ctx, filter).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}
