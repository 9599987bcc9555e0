package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"hrcc/internal/applicant/models"
	platformmongo "hrcc/internal/platform/mongo"
	"hrcc/pkg/domain"
	"hrcc/pkg/platform/sentinel"
)

// MongoApplicantStore persists applicants in the users collection. Every
// filter it builds starts with the domain.
type MongoApplicantStore struct {
	coll *mongo.Collection
}

func NewMongoApplicantStore(db *mongo.Database) *MongoApplicantStore {
	return &MongoApplicantStore{coll: db.Collection(platformmongo.ApplicantsCollection)}
}

func (s *MongoApplicantStore) Create(ctx context.Context, a *models.Applicant) error {
	if _, err := s.coll.InsertOne(ctx, a); err != nil {
		if fields := platformmongo.DuplicateFields(err); fields != nil {
			return &models.DuplicateError{Fields: fields}
		}
		return fmt.Errorf("insert applicant: %w", err)
	}
	return nil
}

func (s *MongoApplicantStore) FindInDomain(ctx context.Context, d domain.Domain, id bson.ObjectID) (*models.Applicant, error) {
	var a models.Applicant
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "domain", Value: d}}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find applicant: %w", err)
	}
	return &a, nil
}

func listFilter(d domain.Domain, q models.Query) bson.D {
	filter := bson.D{{Key: "domain", Value: d}}
	if q.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: q.Status})
	}
	if q.Search != "" {
		re := bson.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		or := make(bson.A, 0, len(models.SearchFields))
		for _, f := range models.SearchFields {
			or = append(or, bson.D{{Key: f, Value: re}})
		}
		filter = append(filter, bson.E{Key: "$or", Value: or})
	}
	return filter
}

// List returns one page sorted newest first plus the total match count. A
// zero Limit returns every match.
func (s *MongoApplicantStore) List(ctx context.Context, d domain.Domain, q models.Query) ([]*models.Applicant, int64, error) {
	filter := listFilter(d, q)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(q.Skip))
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list applicants: %w", err)
	}
	applicants := []*models.Applicant{}
	if err := cur.All(ctx, &applicants); err != nil {
		return nil, 0, fmt.Errorf("decode applicants: %w", err)
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count applicants: %w", err)
	}
	return applicants, total, nil
}

func (s *MongoApplicantStore) FindManyInDomain(ctx context.Context, d domain.Domain, ids []bson.ObjectID) ([]*models.Applicant, error) {
	cur, err := s.coll.Find(ctx, bson.D{
		{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
		{Key: "domain", Value: d},
	})
	if err != nil {
		return nil, fmt.Errorf("find applicants: %w", err)
	}
	applicants := []*models.Applicant{}
	if err := cur.All(ctx, &applicants); err != nil {
		return nil, fmt.Errorf("decode applicants: %w", err)
	}
	return applicants, nil
}

func statusUpdate(status models.Status, notes string, at time.Time) bson.D {
	return bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "notes", Value: notes},
		{Key: "updatedAt", Value: at},
	}}}
}

func (s *MongoApplicantStore) UpdateStatus(ctx context.Context, d domain.Domain, id bson.ObjectID, status models.Status, notes string, at time.Time) (*models.Applicant, error) {
	var a models.Applicant
	err := s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "domain", Value: d}},
		statusUpdate(status, notes, at),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("update applicant status: %w", err)
	}
	return &a, nil
}

// BulkUpdateStatus is a single updateMany; it is atomic per document only.
func (s *MongoApplicantStore) BulkUpdateStatus(ctx context.Context, d domain.Domain, ids []bson.ObjectID, status models.Status, notes string, at time.Time) (models.BulkResult, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}, {Key: "domain", Value: d}},
		statusUpdate(status, notes, at),
	)
	if err != nil {
		return models.BulkResult{}, fmt.Errorf("bulk update applicant status: %w", err)
	}
	return models.BulkResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (s *MongoApplicantStore) AssignTask(ctx context.Context, d domain.Domain, ids []bson.ObjectID, task models.Task, at time.Time) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}, {Key: "domain", Value: d}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "tasks", Value: task}}},
			{Key: "$set", Value: bson.D{{Key: "lastTaskAssigned", Value: at}}},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("assign task: %w", err)
	}
	return res.ModifiedCount, nil
}

func (s *MongoApplicantStore) Count(ctx context.Context, d domain.Domain, f models.CountFilter) (int64, error) {
	filter := bson.D{{Key: "domain", Value: d}}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: f.Status})
	}
	if f.Year != 0 {
		filter = append(filter, bson.E{Key: "yearOfStudy", Value: f.Year})
	}
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count applicants: %w", err)
	}
	return n, nil
}

func (s *MongoApplicantStore) BranchBreakdown(ctx context.Context, d domain.Domain) ([]models.BranchCount, error) {
	cur, err := s.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "domain", Value: d}}}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$branch"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate branches: %w", err)
	}
	out := []models.BranchCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode branches: %w", err)
	}
	return out, nil
}
