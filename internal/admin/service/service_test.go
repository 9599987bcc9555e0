package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/mock/gomock"

	"hrcc/internal/admin/models"
	"hrcc/internal/admin/service/mocks"
	"hrcc/internal/admin/store"
	"hrcc/internal/platform/config"
	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
	audit "hrcc/pkg/platform/audit"
	"hrcc/pkg/platform/secrets"
	"hrcc/pkg/platform/sentinel"
	"hrcc/pkg/requestcontext"
)

var seedAdmins = []config.SeedAdmin{
	{Username: "superadmin", Email: "superadmin@hrcc.com", Role: "super_admin", Password: "super-pass"},
	{Username: "technical_lead", Email: "technical@hrcc.com", Role: "technical_lead", Domain: "technical", Password: "tech-pass"},
}

type ServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockStore   *mocks.MockAdminStore
	mockTokens  *mocks.MockTokenIssuer
	mockRevoker *mocks.MockTokenRevoker
	service     *Service
	now         time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockAdminStore(s.ctrl)
	s.mockTokens = mocks.NewMockTokenIssuer(s.ctrl)
	s.mockRevoker = mocks.NewMockTokenRevoker(s.ctrl)
	s.now = time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	s.service = New(s.mockStore, s.mockTokens, s.mockRevoker,
		WithSeedAdmins(seedAdmins),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
}

func (s *ServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) storedAdmin(username, email, password string, role domain.Role) *models.Admin {
	hash, err := secrets.Hash(password)
	s.Require().NoError(err)
	a, err := models.NewAdmin(bson.NewObjectID(), username, email, hash, role, "", s.now)
	s.Require().NoError(err)
	return a
}

func (s *ServiceSuite) TestLogin_Validation() {
	s.Run("missing identifier", func() {
		_, err := s.service.Login(s.ctx(), "  ", "pw")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
	s.Run("missing password", func() {
		_, err := s.service.Login(s.ctx(), "superadmin", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestLogin_SeedCreatesOnFirstLogin() {
	var created *models.Admin
	s.mockStore.EXPECT().FindByUsernameOrEmail(gomock.Any(), "superadmin", "superadmin@hrcc.com").Return(nil, sentinel.ErrNotFound)
	s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *models.Admin) error {
		created = a
		return nil
	})
	s.mockStore.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), s.now).Return(nil)
	s.mockTokens.EXPECT().IssueAdminToken(gomock.Any(), domain.RoleSuperAdmin, domain.Domain("")).Return("tok", s.now.Add(24*time.Hour), nil)

	res, err := s.service.Login(s.ctx(), "superadmin", "super-pass")
	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.Equal(created.ID, res.Admin.ID)
	s.Equal("tok", res.Token)
	s.NoError(secrets.Verify("super-pass", created.PasswordHash))
	s.Require().NotNil(res.Admin.LastLogin)
	s.True(s.now.Equal(*res.Admin.LastLogin))
}

func (s *ServiceSuite) TestLogin_SeedAcceptsEmailIdentifier() {
	existing := s.storedAdmin("technical_lead", "technical@hrcc.com", "tech-pass", domain.RoleTechnicalLead)
	s.mockStore.EXPECT().FindByUsernameOrEmail(gomock.Any(), "technical_lead", "technical@hrcc.com").Return(existing, nil)
	s.mockStore.EXPECT().UpdateLastLogin(gomock.Any(), existing.ID, s.now).Return(nil)
	s.mockTokens.EXPECT().IssueAdminToken(existing.ID, domain.RoleTechnicalLead, domain.DomainTechnical).Return("tok", s.now, nil)

	res, err := s.service.Login(s.ctx(), "Technical@HRCC.com", "tech-pass")
	s.Require().NoError(err)
	s.Equal(existing.ID, res.Admin.ID)
}

func (s *ServiceSuite) TestLogin_SeedInactiveRejected() {
	existing := s.storedAdmin("superadmin", "superadmin@hrcc.com", "super-pass", domain.RoleSuperAdmin)
	existing.IsActive = false
	s.mockStore.EXPECT().FindByUsernameOrEmail(gomock.Any(), "superadmin", "superadmin@hrcc.com").Return(existing, nil)

	_, err := s.service.Login(s.ctx(), "superadmin", "super-pass")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestLogin_StoredAdmin() {
	existing := s.storedAdmin("ops", "ops@hrcc.com", "correct-horse", domain.RoleCreativeLead)

	s.Run("wrong password", func() {
		s.mockStore.EXPECT().FindByUsernameOrEmail(gomock.Any(), "ops", "ops").Return(existing, nil)
		_, err := s.service.Login(s.ctx(), "ops", "battery-staple")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown admin", func() {
		s.mockStore.EXPECT().FindByUsernameOrEmail(gomock.Any(), "ghost", "ghost").Return(nil, sentinel.ErrNotFound)
		_, err := s.service.Login(s.ctx(), "ghost", "pw")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("seed username with wrong password falls back to stored hash", func() {
		s.mockStore.EXPECT().FindByUsernameOrEmail(gomock.Any(), "superadmin", "superadmin").Return(nil, sentinel.ErrNotFound)
		_, err := s.service.Login(s.ctx(), "superadmin", "guess")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("correct password", func() {
		s.mockStore.EXPECT().FindByUsernameOrEmail(gomock.Any(), "ops", "ops").Return(existing, nil)
		s.mockStore.EXPECT().UpdateLastLogin(gomock.Any(), existing.ID, s.now).Return(nil)
		s.mockTokens.EXPECT().IssueAdminToken(existing.ID, domain.RoleCreativeLead, domain.DomainCreative).Return("tok", s.now, nil)

		res, err := s.service.Login(s.ctx(), "ops", "correct-horse")
		s.Require().NoError(err)
		s.Equal("tok", res.Token)
	})
}

func (s *ServiceSuite) TestSeedAdmins() {
	s.Run("creates missing identities only", func() {
		s.mockStore.EXPECT().FindByUsernameOrEmail(gomock.Any(), "superadmin", "superadmin@hrcc.com").Return(&models.Admin{}, nil)
		s.mockStore.EXPECT().FindByUsernameOrEmail(gomock.Any(), "technical_lead", "technical@hrcc.com").Return(nil, sentinel.ErrNotFound)
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *models.Admin) error {
			s.Equal(domain.DomainTechnical, a.Domain)
			return nil
		})

		n, err := s.service.SeedAdmins(s.ctx())
		s.Require().NoError(err)
		s.Equal(1, n)
	})

	s.Run("duplicate key race counts as present", func() {
		s.mockStore.EXPECT().FindByUsernameOrEmail(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound).Times(2)
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict).Times(2)

		n, err := s.service.SeedAdmins(s.ctx())
		s.Require().NoError(err)
		s.Equal(0, n)
	})
}

func (s *ServiceSuite) TestProfile() {
	s.Run("unauthenticated", func() {
		_, err := s.service.Profile(s.ctx())
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("vanished admin", func() {
		id := bson.NewObjectID()
		ctx := requestcontext.WithAdmin(s.ctx(), id, domain.RoleSuperAdmin, "")
		s.mockStore.EXPECT().FindByID(gomock.Any(), id).Return(nil, sentinel.ErrNotFound)
		_, err := s.service.Profile(ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestLogout() {
	s.Run("revokes until expiry", func() {
		ctx := requestcontext.WithToken(s.ctx(), "jti-9", s.now.Add(3*time.Hour))
		s.mockRevoker.EXPECT().RevokeToken(gomock.Any(), "jti-9", 3*time.Hour).Return(nil)

		at, err := s.service.Logout(ctx)
		s.Require().NoError(err)
		s.True(s.now.Equal(at))
	})

	s.Run("missing token", func() {
		_, err := s.service.Logout(s.ctx())
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

// The in-memory store shows the full seed flow end to end: the first login
// creates the record, the second reuses it.
func TestSeedLoginIdempotentWithMemoryStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenIssuer(ctrl)
	tokens.EXPECT().IssueAdminToken(gomock.Any(), domain.RoleSuperAdmin, gomock.Any()).Return("tok", time.Now(), nil).Times(2)

	admins := store.NewInMemoryAdminStore()
	svc := New(admins, tokens, nil, WithSeedAdmins(seedAdmins[:1]))

	first, err := svc.Login(context.Background(), "superadmin", "super-pass")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(context.Background(), "superadmin", "super-pass")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first.Admin.ID != second.Admin.ID {
		t.Fatalf("expected the same admin record, got %s and %s", first.Admin.ID.Hex(), second.Admin.ID.Hex())
	}
}

func TestLoginAndLogoutAreAudited(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenIssuer(ctrl)
	tokens.EXPECT().IssueAdminToken(gomock.Any(), domain.RoleTechnicalLead, domain.DomainTechnical).Return("tok", time.Now(), nil)
	revoker := mocks.NewMockTokenRevoker(ctrl)
	revoker.EXPECT().RevokeToken(gomock.Any(), "jti-1", gomock.Any()).Return(nil)

	auditor := mocks.NewMockAuditor(ctrl)
	var actions []audit.Action
	auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		actions = append(actions, e.Action)
		return nil
	}).Times(2)

	svc := New(store.NewInMemoryAdminStore(), tokens, revoker,
		WithSeedAdmins(seedAdmins),
		WithAuditor(auditor),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
	res, err := svc.Login(context.Background(), "technical_lead", "tech-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	ctx := requestcontext.WithAdmin(context.Background(), res.Admin.ID, res.Admin.Role, res.Admin.Domain)
	ctx = requestcontext.WithToken(ctx, "jti-1", time.Now().Add(time.Hour))
	if _, err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if len(actions) != 2 || actions[0] != audit.ActionAdminLogin || actions[1] != audit.ActionAdminLogout {
		t.Fatalf("unexpected audit trail %v", actions)
	}
}

func TestAuditFailureDoesNotFailLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	revoker := mocks.NewMockTokenRevoker(ctrl)
	revoker.EXPECT().RevokeToken(gomock.Any(), "jti-2", gomock.Any()).Return(nil)
	auditor := mocks.NewMockAuditor(ctrl)
	auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("audit store down"))

	svc := New(store.NewInMemoryAdminStore(), nil, revoker, WithAuditor(auditor),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	ctx := requestcontext.WithToken(context.Background(), "jti-2", time.Now().Add(time.Hour))
	if _, err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
}
