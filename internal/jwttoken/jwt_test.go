package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
)

var jwtService = NewJWTService("test-signing-key", "test-issuer", 0)
var adminID = bson.NewObjectID()

func Test_IssueAdminToken(t *testing.T) {
	token, exp, err := jwtService.IssueAdminToken(adminID, domain.RoleTechnicalLead, domain.DomainTechnical)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID.Hex(), claims.AdminID)
	assert.Equal(t, "technical_lead", claims.Role)
	assert.Equal(t, "technical", claims.Domain)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func Test_IssueAdminToken_SuperAdminHasNoDomain(t *testing.T) {
	token, _, err := jwtService.IssueAdminToken(adminID, domain.RoleSuperAdmin, domain.DomainCreative)
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Domain)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ValidateToken_OlderThanTTL(t *testing.T) {
	issuedAt := time.Now().Add(-25 * time.Hour)
	past := NewJWTService("test-signing-key", "test-issuer", 0, WithClock(func() time.Time { return issuedAt }))
	token, _, err := past.IssueAdminToken(adminID, domain.RoleCreativeLead, domain.DomainCreative)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
}

func Test_ValidateToken_JustInsideTTL(t *testing.T) {
	issuedAt := time.Now().Add(-23 * time.Hour)
	past := NewJWTService("test-signing-key", "test-issuer", 0, WithClock(func() time.Time { return issuedAt }))
	token, _, err := past.IssueAdminToken(adminID, domain.RoleCreativeLead, domain.DomainCreative)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.NoError(t, err)
}

func Test_ValidateToken_WrongKey(t *testing.T) {
	other := NewJWTService("another-key", "test-issuer", 0)
	token, _, err := other.IssueAdminToken(adminID, domain.RoleSuperAdmin, "")
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		AdminID: adminID.Hex(),
		Role:    "super_admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.Error(t, err)
}

func Test_Adapter(t *testing.T) {
	token, exp, err := jwtService.IssueAdminToken(adminID, domain.RoleCorporateLead, domain.DomainCorporate)
	require.NoError(t, err)

	claims, err := NewJWTServiceAdapter(jwtService).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID.Hex(), claims.AdminID)
	assert.Equal(t, "corporate", claims.Domain)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
}
