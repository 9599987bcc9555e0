package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/mock/gomock"

	"hrcc/internal/admin/handler/mocks"
	"hrcc/internal/admin/models"
	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
	"hrcc/pkg/testutil"
)

type AdminHandlerSuite struct {
	suite.Suite
	mockService *mocks.MockService
	router      chi.Router
	admin       *models.Admin
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerSuite))
}

func (s *AdminHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(ctrl)
	h := New(s.mockService, slog.New(slog.NewTextHandler(io.Discard, nil)))

	s.router = chi.NewRouter()
	h.RegisterPublic(s.router)
	h.Register(s.router)

	admin, err := models.NewAdmin(bson.NewObjectID(), "superadmin", "superadmin@hrcc.com", "hash", domain.RoleSuperAdmin, "", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.admin = admin
}

func (s *AdminHandlerSuite) TestLogin() {
	s.Run("success returns token and admin without hash", func() {
		exp := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
		s.mockService.EXPECT().Login(gomock.Any(), "superadmin", "pw").
			Return(&models.LoginResult{Token: "tok", ExpiresAt: exp, Admin: s.admin}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/login", map[string]string{
			"username": " superadmin ",
			"password": "pw",
		}))

		s.Equal(http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		s.Equal("Login successful", (*body)["message"])
		s.Equal("tok", (*body)["token"])
		admin := (*body)["admin"].(map[string]any)
		s.Equal("super_admin", admin["role"])
		s.Nil(admin["domain"])
		s.NotContains(admin, "password")
		s.NotContains(rr.Body.String(), "hash")
	})

	s.Run("missing password is a validation error", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/login", map[string]string{
			"username": "superadmin",
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("invalid credentials", func() {
		s.mockService.EXPECT().Login(gomock.Any(), "superadmin", "nope").
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/login", map[string]string{
			"username": "superadmin",
			"password": "nope",
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
	})
}

func (s *AdminHandlerSuite) TestProfile() {
	s.Run("found", func() {
		s.mockService.EXPECT().Profile(gomock.Any()).Return(s.admin, nil)
		req := testutil.WithAdmin(testutil.NewJSONRequest(s.T(), http.MethodGet, "/profile", nil), s.admin.ID, s.admin.Role, "")

		rr := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		s.Equal(s.admin.ID.Hex(), (*body)["admin"].(map[string]any)["id"])
	})

	s.Run("vanished admin", func() {
		s.mockService.EXPECT().Profile(gomock.Any()).Return(nil, dErrors.New(dErrors.CodeNotFound, "Admin not found"))
		req := testutil.WithAdmin(testutil.NewJSONRequest(s.T(), http.MethodGet, "/profile", nil), s.admin.ID, s.admin.Role, "")

		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})
}

func (s *AdminHandlerSuite) TestLogout() {
	at := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	s.mockService.EXPECT().Logout(gomock.Any()).Return(at, nil)

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/logout", nil))

	s.Equal(http.StatusOK, rr.Code)
	body := testutil.UnmarshalResponse[LogoutResponse](s.T(), rr)
	s.Equal("Logout successful", body.Message)
	s.True(at.Equal(body.Timestamp))
}

func (s *AdminHandlerSuite) TestDomainLead() {
	s.Run("lead sees its own role and domain", func() {
		req := testutil.WithAdmin(testutil.NewJSONRequest(s.T(), http.MethodGet, "/domain-lead", nil),
			bson.NewObjectID(), domain.RoleCreativeLead, domain.DomainCreative)

		rr := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[DomainLeadResponse](s.T(), rr)
		s.Equal("creative_lead", body.Role)
		s.Require().NotNil(body.Domain)
		s.Equal("creative", *body.Domain)
	})

	s.Run("unauthenticated request is rejected", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/domain-lead", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
	})
}
