// Package store persists applicants.
package store

import (
	"bytes"
	"context"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hrcc/internal/applicant/models"
	"hrcc/pkg/domain"
	"hrcc/pkg/platform/sentinel"
)

// InMemoryApplicantStore keeps applicants in process memory. Unique fields
// are checked under the write lock, mirroring the Mongo unique indexes.
type InMemoryApplicantStore struct {
	mu         sync.RWMutex
	applicants map[bson.ObjectID]*models.Applicant
}

func NewInMemoryApplicantStore() *InMemoryApplicantStore {
	return &InMemoryApplicantStore{applicants: make(map[bson.ObjectID]*models.Applicant)}
}

// Create inserts a, reporting every unique field that collides.
func (s *InMemoryApplicantStore) Create(_ context.Context, a *models.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fields []string
	for _, f := range []struct {
		name  string
		value func(*models.Applicant) string
	}{
		{"email", func(x *models.Applicant) string { return strings.ToLower(x.Email) }},
		{"phone", func(x *models.Applicant) string { return x.Phone }},
		{"srmEmail", func(x *models.Applicant) string { return strings.ToLower(x.SRMEmail) }},
		{"regNo", func(x *models.Applicant) string { return x.RegNo }},
	} {
		want := f.value(a)
		for _, existing := range s.applicants {
			if f.value(existing) == want {
				fields = append(fields, f.name)
				break
			}
		}
	}
	if len(fields) > 0 {
		return &models.DuplicateError{Fields: fields}
	}
	s.applicants[a.ID] = clone(a)
	return nil
}

func (s *InMemoryApplicantStore) FindInDomain(_ context.Context, d domain.Domain, id bson.ObjectID) (*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.applicants[id]
	if !ok || a.Domain != d {
		return nil, sentinel.ErrNotFound
	}
	return clone(a), nil
}

// List returns one page sorted newest first plus the total match count. A
// zero Limit returns every match.
func (s *InMemoryApplicantStore) List(_ context.Context, d domain.Domain, q models.Query) ([]*models.Applicant, int64, error) {
	var search *regexp.Regexp
	if q.Search != "" {
		search = regexp.MustCompile("(?i)" + regexp.QuoteMeta(q.Search))
	}

	s.mu.RLock()
	var matched []*models.Applicant
	for _, a := range s.applicants {
		if a.Domain != d || (q.Status != "" && a.Status != q.Status) {
			continue
		}
		if search != nil && !matchesSearch(a, search) {
			continue
		}
		matched = append(matched, clone(a))
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(x, y *models.Applicant) int {
		if c := y.CreatedAt.Compare(x.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(y.ID[:], x.ID[:])
	})

	total := int64(len(matched))
	if q.Skip >= len(matched) {
		return []*models.Applicant{}, total, nil
	}
	matched = matched[q.Skip:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

func matchesSearch(a *models.Applicant, re *regexp.Regexp) bool {
	for _, v := range []string{a.Name, a.Email, a.SRMEmail, a.RegNo, a.Branch} {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

// FindManyInDomain returns the applicants among ids that belong to d.
func (s *InMemoryApplicantStore) FindManyInDomain(_ context.Context, d domain.Domain, ids []bson.ObjectID) ([]*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Applicant, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.applicants[id]; ok && a.Domain == d {
			out = append(out, clone(a))
		}
	}
	return out, nil
}

func (s *InMemoryApplicantStore) UpdateStatus(_ context.Context, d domain.Domain, id bson.ObjectID, status models.Status, notes string, at time.Time) (*models.Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applicants[id]
	if !ok || a.Domain != d {
		return nil, sentinel.ErrNotFound
	}
	a.Status = status
	a.Notes = notes
	a.UpdatedAt = at
	return clone(a), nil
}

// BulkUpdateStatus updates every applicant among ids that belongs to d.
// Unknown ids are ignored.
func (s *InMemoryApplicantStore) BulkUpdateStatus(_ context.Context, d domain.Domain, ids []bson.ObjectID, status models.Status, notes string, at time.Time) (models.BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res models.BulkResult
	seen := make(map[bson.ObjectID]bool, len(ids))
	for _, id := range ids {
		a, ok := s.applicants[id]
		if !ok || a.Domain != d || seen[id] {
			continue
		}
		seen[id] = true
		res.MatchedCount++
		res.ModifiedCount++
		a.Status = status
		a.Notes = notes
		a.UpdatedAt = at
	}
	return res, nil
}

// AssignTask appends task to every applicant among ids in d and returns how
// many were updated.
func (s *InMemoryApplicantStore) AssignTask(_ context.Context, d domain.Domain, ids []bson.ObjectID, task models.Task, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range ids {
		a, ok := s.applicants[id]
		if !ok || a.Domain != d {
			continue
		}
		a.Tasks = append(a.Tasks, task)
		assigned := at
		a.LastTaskAssigned = &assigned
		n++
	}
	return n, nil
}

func (s *InMemoryApplicantStore) Count(_ context.Context, d domain.Domain, f models.CountFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, a := range s.applicants {
		if a.Domain != d {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Year != 0 && a.YearOfStudy != f.Year {
			continue
		}
		n++
	}
	return n, nil
}

// BranchBreakdown counts applicants per branch, largest first.
func (s *InMemoryApplicantStore) BranchBreakdown(_ context.Context, d domain.Domain) ([]models.BranchCount, error) {
	s.mu.RLock()
	counts := map[string]int64{}
	for _, a := range s.applicants {
		if a.Domain == d {
			counts[a.Branch]++
		}
	}
	s.mu.RUnlock()

	out := make([]models.BranchCount, 0, len(counts))
	for branch, n := range counts {
		out = append(out, models.BranchCount{Branch: branch, Count: n})
	}
	slices.SortFunc(out, func(x, y models.BranchCount) int {
		if x.Count != y.Count {
			if x.Count > y.Count {
				return -1
			}
			return 1
		}
		return strings.Compare(x.Branch, y.Branch)
	})
	return out, nil
}

func clone(a *models.Applicant) *models.Applicant {
	cp := *a
	cp.Tasks = slices.Clone(a.Tasks)
	if a.Responses != nil {
		cp.Responses = make(map[string]string, len(a.Responses))
		for k, v := range a.Responses {
			cp.Responses[k] = v
		}
	}
	return &cp
}
