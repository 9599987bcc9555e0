package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"hrcc/pkg/domain"
	"hrcc/pkg/platform/sentinel"
	"hrcc/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*JWTClaims, error) {
	return s.claims, s.err
}

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocations) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], s.err
}

type stubResolver struct {
	principal *Principal
	err       error
}

func (s stubResolver) ResolveAdmin(context.Context, bson.ObjectID) (*Principal, error) {
	return s.principal, s.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	adminID := bson.NewObjectID()
	exp := time.Now().Add(time.Hour).UTC()
	validClaims := &JWTClaims{AdminID: adminID.Hex(), Role: "technical_lead", Domain: "technical", JTI: "jti-1", ExpiresAt: exp}
	active := &Principal{ID: adminID, Role: domain.RoleTechnicalLead, Domain: domain.DomainTechnical, Active: true}

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		revoked    stubRevocations
		resolver   stubResolver
		wantStatus int
	}{
		{name: "missing header", header: "", validator: stubValidator{claims: validClaims}, resolver: stubResolver{principal: active}, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", validator: stubValidator{claims: validClaims}, resolver: stubResolver{principal: active}, wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", validator: stubValidator{err: errors.New("expired")}, resolver: stubResolver{principal: active}, wantStatus: http.StatusUnauthorized},
		{name: "revoked token", header: "Bearer tok", validator: stubValidator{claims: validClaims}, revoked: stubRevocations{revoked: map[string]bool{"jti-1": true}}, resolver: stubResolver{principal: active}, wantStatus: http.StatusUnauthorized},
		{name: "revocation store down", header: "Bearer tok", validator: stubValidator{claims: validClaims}, revoked: stubRevocations{err: errors.New("redis down")}, resolver: stubResolver{principal: active}, wantStatus: http.StatusInternalServerError},
		{name: "admin vanished", header: "Bearer tok", validator: stubValidator{claims: validClaims}, resolver: stubResolver{err: sentinel.ErrNotFound}, wantStatus: http.StatusUnauthorized},
		{name: "admin inactive", header: "Bearer tok", validator: stubValidator{claims: validClaims}, resolver: stubResolver{principal: &Principal{ID: adminID, Role: domain.RoleTechnicalLead, Domain: domain.DomainTechnical}}, wantStatus: http.StatusUnauthorized},
		{name: "valid", header: "Bearer tok", validator: stubValidator{claims: validClaims}, resolver: stubResolver{principal: active}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCtx context.Context
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCtx = r.Context()
				w.WriteHeader(http.StatusOK)
			})
			h := RequireAuth(tt.validator, tt.revoked, tt.resolver, discard())(next)

			r := httptest.NewRequest(http.MethodGet, "/api/admin/profile", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Nil(t, gotCtx)
				return
			}
			require.NotNil(t, gotCtx)
			assert.Equal(t, adminID, requestcontext.AdminID(gotCtx))
			assert.Equal(t, domain.RoleTechnicalLead, requestcontext.Role(gotCtx))
			assert.Equal(t, domain.DomainTechnical, requestcontext.Domain(gotCtx))
			assert.Equal(t, "jti-1", requestcontext.TokenID(gotCtx))
			assert.True(t, exp.Equal(requestcontext.TokenExpiry(gotCtx)))
		})
	}
}

func TestRequireAuthUsesStoredRole(t *testing.T) {
	adminID := bson.NewObjectID()
	claims := &JWTClaims{AdminID: adminID.Hex(), Role: "super_admin", JTI: "j"}
	demoted := &Principal{ID: adminID, Role: domain.RoleCreativeLead, Domain: domain.DomainCreative, Active: true}

	var role domain.Role
	h := RequireAuth(stubValidator{claims: claims}, nil, stubResolver{principal: demoted}, discard())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role = requestcontext.Role(r.Context())
		}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer tok")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, domain.RoleCreativeLead, role)
}

func TestGuards(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	logger := discard()

	withAdmin := func(role domain.Role, d domain.Domain) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := requestcontext.WithAdmin(r.Context(), bson.NewObjectID(), role, d)
		return r.WithContext(ctx)
	}

	tests := []struct {
		name   string
		mw     func(http.Handler) http.Handler
		role   domain.Role
		domain domain.Domain
		want   int
	}{
		{"super admin passes technical domain", RequireDomain(domain.DomainTechnical, logger), domain.RoleSuperAdmin, "", http.StatusOK},
		{"super admin passes creative domain", RequireDomain(domain.DomainCreative, logger), domain.RoleSuperAdmin, "", http.StatusOK},
		{"lead passes own domain", RequireDomain(domain.DomainTechnical, logger), domain.RoleTechnicalLead, domain.DomainTechnical, http.StatusOK},
		{"lead fails other domain", RequireDomain(domain.DomainCreative, logger), domain.RoleTechnicalLead, domain.DomainTechnical, http.StatusForbidden},
		{"unauthenticated", RequireDomain(domain.DomainCreative, logger), "", "", http.StatusUnauthorized},
		{"role exact match", RequireRole(domain.RoleCorporateLead, logger), domain.RoleCorporateLead, domain.DomainCorporate, http.StatusOK},
		{"role mismatch", RequireRole(domain.RoleCorporateLead, logger), domain.RoleCreativeLead, domain.DomainCreative, http.StatusForbidden},
		{"role super admin", RequireRole(domain.RoleCorporateLead, logger), domain.RoleSuperAdmin, "", http.StatusOK},
		{"domain lead", RequireDomainLead(logger), domain.RoleCreativeLead, domain.DomainCreative, http.StatusOK},
		{"unknown role is not a lead", RequireDomainLead(logger), domain.Role("viewer"), "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.mw(ok).ServeHTTP(w, withAdmin(tt.role, tt.domain))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
