package auth

import (
	"log/slog"
	"net/http"

	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
	"hrcc/pkg/platform/httputil"
	"hrcc/pkg/requestcontext"
)

// Guards run after RequireAuth. super_admin passes all of them.

// RequireRole admits only the given role.
func RequireRole(role domain.Role, logger *slog.Logger) func(http.Handler) http.Handler {
	return guard(logger, "role", func(r domain.Role, _ domain.Domain) bool {
		return r == role
	})
}

// RequireDomainLead admits any lead role.
func RequireDomainLead(logger *slog.Logger) func(http.Handler) http.Handler {
	return guard(logger, "domain_lead", func(r domain.Role, _ domain.Domain) bool {
		return r.IsDomainLead()
	})
}

// RequireDomain admits admins whose domain equals d.
func RequireDomain(d domain.Domain, logger *slog.Logger) func(http.Handler) http.Handler {
	return guard(logger, "domain", func(_ domain.Role, have domain.Domain) bool {
		return have == d
	})
}

func guard(logger *slog.Logger, kind string, allow func(domain.Role, domain.Domain) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			role := requestcontext.Role(ctx)
			if role == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Admin authentication required."))
				return
			}
			d := requestcontext.Domain(ctx)
			if role.IsSuperAdmin() || allow(role, d) {
				next.ServeHTTP(w, r)
				return
			}
			logger.WarnContext(ctx, "forbidden - "+kind+" check failed",
				"admin_id", requestcontext.AdminID(ctx).Hex(),
				"role", role,
				"domain", d,
				"request_id", requestcontext.RequestID(ctx),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "Access denied. Insufficient permissions."))
		})
	}
}
