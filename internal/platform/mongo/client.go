// Package mongo connects to the document store and ensures the indexes the
// stores rely on for uniqueness.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"hrcc/internal/platform/config"
)

// Collection names.
const (
	ApplicantsCollection = "users"
	AdminsCollection     = "admins"
)

// Client wraps the driver client with the configured database.
type Client struct {
	*mongo.Client
	db *mongo.Database
}

// Connect dials, pings and returns the client. The caller must Disconnect.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI).SetAppName("hrcc"))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Client{Client: client, db: client.Database(cfg.Database)}, nil
}

// Database returns the configured database.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Health pings the primary.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx, nil)
}

// EnsureIndexes creates the unique indexes on applicants and admins. Names
// are fixed so duplicate-key errors can be mapped back to fields.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(field + "_unique"),
		}
	}

	applicants := []mongo.IndexModel{
		unique("email"),
		unique("phone"),
		unique("srmEmail"),
		unique("regNo"),
		{Keys: bson.D{{Key: "domain", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := db.Collection(ApplicantsCollection).Indexes().CreateMany(ctx, applicants); err != nil {
		return fmt.Errorf("create applicant indexes: %w", err)
	}

	admins := []mongo.IndexModel{unique("username"), unique("email")}
	if _, err := db.Collection(AdminsCollection).Indexes().CreateMany(ctx, admins); err != nil {
		return fmt.Errorf("create admin indexes: %w", err)
	}
	return nil
}

var dupIndexPattern = regexp.MustCompile(`index: (\w+?)_unique`)

// DuplicateFields extracts the field names whose unique index rejected a
// write. It returns nil when err is not a duplicate-key error.
func DuplicateFields(err error) []string {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return nil
	}
	var fields []string
	seen := map[string]bool{}
	add := func(msg string) {
		for _, m := range dupIndexPattern.FindAllStringSubmatch(msg, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				fields = append(fields, m[1])
			}
		}
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			add(e.Message)
		}
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			add(e.Message)
		}
	}
	if len(fields) == 0 {
		add(err.Error())
	}
	if len(fields) == 0 {
		fields = []string{"unknown"}
	}
	return fields
}

// IsDuplicate reports a unique index violation.
func IsDuplicate(err error) bool {
	return err != nil && mongo.IsDuplicateKeyError(err)
}

// JoinFields renders fields for an error message.
func JoinFields(fields []string) string {
	return strings.Join(fields, ", ")
}
