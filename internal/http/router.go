// Package httpapi assembles the HTTP surface: global middleware, the public
// registration and login routes, the authenticated admin routes and one
// dashboard per recruitment domain.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminhandler "hrcc/internal/admin/handler"
	applicanthandler "hrcc/internal/applicant/handler"
	"hrcc/internal/platform/metrics"
	"hrcc/internal/ratelimit"
	"hrcc/pkg/domain"
	"hrcc/pkg/platform/httputil"
	authmw "hrcc/pkg/platform/middleware/auth"
	"hrcc/pkg/platform/middleware/metadata"
	"hrcc/pkg/platform/middleware/request"
	"hrcc/pkg/platform/middleware/requesttime"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// Deps carries everything the router mounts. Dashboards without an entry for
// a domain leave that prefix unmounted.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	CORSOrigins    []string
	RequestTimeout time.Duration

	Validator  authmw.JWTValidator
	Revocation authmw.TokenRevocationChecker
	Admins     authmw.AdminResolver

	LoginLimiter *ratelimit.Middleware
	Admin        *adminhandler.Handler
	Register     *applicanthandler.RegisterHandler
	Dashboards   map[domain.Domain]*applicanthandler.DashboardHandler
	Health       map[string]HealthCheck
}

// DashboardPrefix is the mount point of a domain's dashboard.
func DashboardPrefix(d domain.Domain) string {
	return "/api/" + d.String() + "-dashboard"
}

// NewRouter builds the application router.
func NewRouter(deps Deps) http.Handler {
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Recovery(deps.Logger))
	r.Use(request.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(request.Latency(deps.Metrics))
	}

	r.Get("/health", healthHandler(deps.Health))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	requireAuth := authmw.RequireAuth(deps.Validator, deps.Revocation, deps.Admins, deps.Logger)

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(timeout))
		r.Use(request.ContentTypeJSON)

		r.Route("/api/auth", func(r chi.Router) {
			deps.Register.Register(r)
		})

		r.Route("/api/admin", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if deps.LoginLimiter != nil {
					r.Use(deps.LoginLimiter.LoginLimit)
				}
				deps.Admin.RegisterPublic(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				deps.Admin.Register(r)
			})
		})

		for _, d := range domain.Domains {
			h, ok := deps.Dashboards[d]
			if !ok {
				continue
			}
			r.Route(DashboardPrefix(d), func(r chi.Router) {
				r.Use(requireAuth)
				r.Use(authmw.RequireDomain(d, deps.Logger))
				h.Register(r)
			})
		}
	})

	return r
}

type healthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Services: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Services[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Services[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
