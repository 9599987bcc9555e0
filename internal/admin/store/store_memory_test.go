package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"hrcc/internal/admin/models"
	"hrcc/pkg/domain"
	"hrcc/pkg/platform/sentinel"
)

func newAdmin(t *testing.T, username, email string) *models.Admin {
	t.Helper()
	a, err := models.NewAdmin(bson.NewObjectID(), username, email, "hash", domain.RoleCreativeLead, "", time.Now())
	require.NoError(t, err)
	return a
}

func TestInMemoryAdminStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryAdminStore()
	a := newAdmin(t, "creative_lead", "creative@hrcc.com")
	require.NoError(t, s.Create(ctx, a))

	t.Run("unique username and email", func(t *testing.T) {
		require.ErrorIs(t, s.Create(ctx, newAdmin(t, "creative_lead", "other@hrcc.com")), sentinel.ErrConflict)
		require.ErrorIs(t, s.Create(ctx, newAdmin(t, "other", "CREATIVE@hrcc.com")), sentinel.ErrConflict)
	})

	t.Run("lookup by either identifier", func(t *testing.T) {
		got, err := s.FindByUsernameOrEmail(ctx, "nobody", "creative@hrcc.com")
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)

		got, err = s.FindByUsernameOrEmail(ctx, "creative_lead", "")
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)

		_, err = s.FindByUsernameOrEmail(ctx, "nobody", "nobody@hrcc.com")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("last login and activation", func(t *testing.T) {
		at := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, s.UpdateLastLogin(ctx, a.ID, at))
		require.NoError(t, s.SetActive(ctx, a.ID, false))

		got, err := s.FindByID(ctx, a.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastLogin)
		assert.True(t, at.Equal(*got.LastLogin))
		assert.False(t, got.IsActive)

		require.ErrorIs(t, s.UpdateLastLogin(ctx, bson.NewObjectID(), at), sentinel.ErrNotFound)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		got, err := s.FindByID(ctx, a.ID)
		require.NoError(t, err)
		got.Username = "mutated"

		again, err := s.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "creative_lead", again.Username)
	})
}
