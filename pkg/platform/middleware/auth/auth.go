package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
	"hrcc/pkg/platform/httputil"
	"hrcc/pkg/platform/sentinel"
	"hrcc/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// TokenRevocationChecker defines the interface for checking if tokens are revoked
type TokenRevocationChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// AdminResolver loads the current state of the admin a token was issued to.
// It returns sentinel.ErrNotFound when the admin no longer exists.
type AdminResolver interface {
	ResolveAdmin(ctx context.Context, id bson.ObjectID) (*Principal, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	AdminID   string
	Role      string
	Domain    string
	JTI       string // JWT ID for revocation tracking
	ExpiresAt time.Time
}

// Principal is the authenticated admin as currently stored. Role and domain
// come from the record, not the token, so a demoted lead loses access
// immediately.
type Principal struct {
	ID     bson.ObjectID
	Role   domain.Role
	Domain domain.Domain
	Active bool
}

func unauthorized(w http.ResponseWriter, desc string) {
	httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, desc))
}

func RequireAuth(validator JWTValidator, revocationChecker TokenRevocationChecker, admins AdminResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				unauthorized(w, "Access denied. No token provided.")
				return
			}

			claims, err := validator.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				unauthorized(w, "Invalid or expired token")
				return
			}

			if revocationChecker != nil {
				if claims.JTI == "" {
					logger.WarnContext(ctx, "unauthorized access - missing token jti",
						"request_id", requestID,
					)
					unauthorized(w, "Invalid or expired token")
					return
				}
				revoked, err := revocationChecker.IsTokenRevoked(ctx, claims.JTI)
				if err != nil {
					logger.ErrorContext(ctx, "failed to check token revocation",
						"error", err,
						"request_id", requestID,
					)
					httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate token"))
					return
				}
				if revoked {
					logger.WarnContext(ctx, "unauthorized access - token revoked",
						"jti", claims.JTI,
						"request_id", requestID,
					)
					unauthorized(w, "Token has been revoked")
					return
				}
			}

			adminID, err := domain.ParseID(claims.AdminID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed admin id",
					"request_id", requestID,
				)
				unauthorized(w, "Invalid or expired token")
				return
			}

			principal, err := admins.ResolveAdmin(ctx, adminID)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					logger.WarnContext(ctx, "unauthorized access - admin not found",
						"admin_id", adminID.Hex(),
						"request_id", requestID,
					)
					unauthorized(w, "Invalid token or admin not active.")
					return
				}
				logger.ErrorContext(ctx, "failed to resolve admin",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve admin"))
				return
			}
			if !principal.Active {
				logger.WarnContext(ctx, "unauthorized access - admin inactive",
					"admin_id", adminID.Hex(),
					"request_id", requestID,
				)
				unauthorized(w, "Invalid token or admin not active.")
				return
			}

			ctx = requestcontext.WithAdmin(ctx, principal.ID, principal.Role, principal.Domain)
			ctx = requestcontext.WithToken(ctx, claims.JTI, claims.ExpiresAt)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
