// Package store persists admin accounts.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hrcc/internal/admin/models"
	"hrcc/pkg/platform/sentinel"
)

// InMemoryAdminStore keeps admins in process memory for tests and local runs.
type InMemoryAdminStore struct {
	mu     sync.RWMutex
	admins map[bson.ObjectID]*models.Admin
}

func NewInMemoryAdminStore() *InMemoryAdminStore {
	return &InMemoryAdminStore{admins: make(map[bson.ObjectID]*models.Admin)}
}

func (s *InMemoryAdminStore) Create(_ context.Context, admin *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.admins {
		if existing.Username == admin.Username || strings.EqualFold(existing.Email, admin.Email) {
			return sentinel.ErrConflict
		}
	}
	cp := *admin
	s.admins[admin.ID] = &cp
	return nil
}

func (s *InMemoryAdminStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.admins[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, sentinel.ErrNotFound
}

// FindByUsernameOrEmail matches either field.
func (s *InMemoryAdminStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.admins {
		if a.Username == username || strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryAdminStore) UpdateLastLogin(_ context.Context, id bson.ObjectID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	a.LastLogin = &at
	return nil
}

// SetActive toggles an admin's access.
func (s *InMemoryAdminStore) SetActive(_ context.Context, id bson.ObjectID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	a.IsActive = active
	return nil
}
