//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hrcc/internal/applicant/models"
	"hrcc/internal/applicant/store"
	platformmongo "hrcc/internal/platform/mongo"
	"hrcc/pkg/domain"
	"hrcc/pkg/platform/sentinel"
	"hrcc/pkg/testutil/containers"
)

type MongoApplicantStoreSuite struct {
	suite.Suite
	db    *mongo.Database
	store *store.MongoApplicantStore
	now   time.Time
}

func TestMongoApplicantStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(MongoApplicantStoreSuite))
}

func (s *MongoApplicantStoreSuite) SetupSuite() {
	mc := containers.GetManager().GetMongo(s.T())
	s.db = mc.Database("hrcc_applicant_store_test")
	s.Require().NoError(platformmongo.EnsureIndexes(context.Background(), s.db))
	s.store = store.NewMongoApplicantStore(s.db)
	s.now = time.Now().UTC().Truncate(time.Millisecond)
}

func (s *MongoApplicantStoreSuite) SetupTest() {
	_, err := s.db.Collection(platformmongo.ApplicantsCollection).DeleteMany(context.Background(), bson.D{})
	s.Require().NoError(err)
}

func (s *MongoApplicantStoreSuite) TearDownSuite() {
	_ = s.db.Drop(context.Background())
}

func (s *MongoApplicantStoreSuite) applicant(n int, d domain.Domain) *models.Applicant {
	a, err := models.NewApplicant(bson.NewObjectID(), models.Registration{
		Name:        fmt.Sprintf("Applicant %d", n),
		Email:       fmt.Sprintf("a%d@example.com", n),
		Phone:       fmt.Sprintf("90000000%02d", n),
		SRMEmail:    fmt.Sprintf("ab%d@srmist.edu.in", n),
		RegNo:       fmt.Sprintf("RA23%05d", n),
		Branch:      "CSE",
		Department:  "Computing",
		YearOfStudy: 2,
		Domain:      d,
		Responses:   map[string]string{"why": "because"},
	}, s.now.Add(time.Duration(n)*time.Second))
	s.Require().NoError(err)
	return a
}

func (s *MongoApplicantStoreSuite) TestCreateNamesDuplicateFields() {
	ctx := context.Background()
	first := s.applicant(1, domain.DomainTechnical)
	s.Require().NoError(s.store.Create(ctx, first))

	dup := s.applicant(2, domain.DomainTechnical)
	dup.Phone = first.Phone
	err := s.store.Create(ctx, dup)
	s.Require().ErrorIs(err, sentinel.ErrConflict)
	var de *models.DuplicateError
	s.Require().ErrorAs(err, &de)
	s.Equal([]string{"phone"}, de.Fields)
}

func (s *MongoApplicantStoreSuite) TestRoundTripAndDomainScope() {
	ctx := context.Background()
	a := s.applicant(1, domain.DomainCreative)
	s.Require().NoError(s.store.Create(ctx, a))

	got, err := s.store.FindInDomain(ctx, domain.DomainCreative, a.ID)
	s.Require().NoError(err)
	if diff := cmp.Diff(a, got, cmpopts.EquateEmpty()); diff != "" {
		s.Failf("applicant mismatch", "(-want +got):\n%s", diff)
	}

	_, err = s.store.FindInDomain(ctx, domain.DomainTechnical, a.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MongoApplicantStoreSuite) TestListSearchAndPaging() {
	ctx := context.Background()
	for i := 1; i <= 4; i++ {
		s.Require().NoError(s.store.Create(ctx, s.applicant(i, domain.DomainTechnical)))
	}
	s.Require().NoError(s.store.Create(ctx, s.applicant(9, domain.DomainCorporate)))

	page, total, err := s.store.List(ctx, domain.DomainTechnical, models.Query{Skip: 1, Limit: 2})
	s.Require().NoError(err)
	s.EqualValues(4, total)
	s.Require().Len(page, 2)
	s.Equal("Applicant 3", page[0].Name)

	_, total, err = s.store.List(ctx, domain.DomainTechnical, models.Query{Search: "A2@EXAMPLE"})
	s.Require().NoError(err)
	s.EqualValues(1, total)

	_, total, err = s.store.List(ctx, domain.DomainTechnical, models.Query{Search: "a.@example"})
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *MongoApplicantStoreSuite) TestMutations() {
	ctx := context.Background()
	a := s.applicant(1, domain.DomainTechnical)
	b := s.applicant(2, domain.DomainTechnical)
	s.Require().NoError(s.store.Create(ctx, a))
	s.Require().NoError(s.store.Create(ctx, b))
	at := s.now.Add(time.Hour)

	updated, err := s.store.UpdateStatus(ctx, domain.DomainTechnical, a.ID, models.StatusShortlisted, "strong", at)
	s.Require().NoError(err)
	s.Equal(models.StatusShortlisted, updated.Status)
	s.True(at.Equal(updated.UpdatedAt))

	_, err = s.store.UpdateStatus(ctx, domain.DomainCreative, a.ID, models.StatusRejected, "", at)
	s.ErrorIs(err, sentinel.ErrNotFound)

	res, err := s.store.BulkUpdateStatus(ctx, domain.DomainTechnical, []bson.ObjectID{b.ID, bson.NewObjectID()}, models.StatusRejected, "", at)
	s.Require().NoError(err)
	s.EqualValues(1, res.MatchedCount)

	task, err := models.NewTask(bson.NewObjectID(), "Task", "Do it", nil, models.PriorityLow, bson.NewObjectID(), at)
	s.Require().NoError(err)
	n, err := s.store.AssignTask(ctx, domain.DomainTechnical, []bson.ObjectID{a.ID, b.ID}, *task, at)
	s.Require().NoError(err)
	s.EqualValues(2, n)

	count, err := s.store.Count(ctx, domain.DomainTechnical, models.CountFilter{Status: models.StatusRejected})
	s.Require().NoError(err)
	s.EqualValues(1, count)

	branches, err := s.store.BranchBreakdown(ctx, domain.DomainTechnical)
	s.Require().NoError(err)
	s.Equal([]models.BranchCount{{Branch: "CSE", Count: 2}}, branches)
}
