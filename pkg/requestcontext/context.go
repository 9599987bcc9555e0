// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets the values; services read them without importing net/http:
//
//	adminID := requestcontext.AdminID(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithAdmin(ctx, adminID, domain.RoleSuperAdmin, "")
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hrcc/pkg/domain"
)

type (
	adminIDKey     struct{}
	roleKey        struct{}
	domainKey      struct{}
	tokenIDKey     struct{}
	tokenExpiryKey struct{}
	clientIPKey    struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// -----------------------------------------------------------------------------
// Admin identity
// -----------------------------------------------------------------------------

// AdminID returns the authenticated admin id, or the zero id.
func AdminID(ctx context.Context) bson.ObjectID {
	if v, ok := ctx.Value(adminIDKey{}).(bson.ObjectID); ok {
		return v
	}
	return bson.NilObjectID
}

// Role returns the authenticated admin role, or "".
func Role(ctx context.Context) domain.Role {
	if v, ok := ctx.Value(roleKey{}).(domain.Role); ok {
		return v
	}
	return ""
}

// Domain returns the authenticated admin's domain; empty for super_admin.
func Domain(ctx context.Context) domain.Domain {
	if v, ok := ctx.Value(domainKey{}).(domain.Domain); ok {
		return v
	}
	return ""
}

// WithAdmin injects the resolved admin identity.
func WithAdmin(ctx context.Context, adminID bson.ObjectID, role domain.Role, d domain.Domain) context.Context {
	ctx = context.WithValue(ctx, adminIDKey{}, adminID)
	ctx = context.WithValue(ctx, roleKey{}, role)
	return context.WithValue(ctx, domainKey{}, d)
}

// -----------------------------------------------------------------------------
// Token metadata
// -----------------------------------------------------------------------------

// TokenID returns the jti of the bearer token used for this request.
func TokenID(ctx context.Context) string {
	if v, ok := ctx.Value(tokenIDKey{}).(string); ok {
		return v
	}
	return ""
}

// TokenExpiry returns the bearer token's expiry, or the zero time.
func TokenExpiry(ctx context.Context) time.Time {
	if v, ok := ctx.Value(tokenExpiryKey{}).(time.Time); ok {
		return v
	}
	return time.Time{}
}

// WithToken injects bearer token metadata.
func WithToken(ctx context.Context, jti string, expiresAt time.Time) context.Context {
	ctx = context.WithValue(ctx, tokenIDKey{}, jti)
	return context.WithValue(ctx, tokenExpiryKey{}, expiresAt)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ClientIP retrieves the caller address.
func ClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(clientIPKey{}).(string); ok {
		return v
	}
	return ""
}

// WithClientIP injects the caller address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// Now retrieves the request-scoped time.
// Falls back to time.Now() outside HTTP requests (CLI, seeding, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
