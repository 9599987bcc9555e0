package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrcc/internal/admin/models"
	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/platform/httputil"
	authmw "hrcc/pkg/platform/middleware/auth"
	"hrcc/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the admin operations exposed over HTTP.
type Service interface {
	Login(ctx context.Context, identifier, password string) (*models.LoginResult, error)
	Profile(ctx context.Context) (*models.Admin, error)
	Logout(ctx context.Context) (time.Time, error)
}

// Handler wires the /api/admin endpoints to the admin service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated admin routes. The caller applies
// the login rate limiter.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/login", h.HandleLogin)
}

// Register mounts the admin routes that require RequireAuth upstream.
func (h *Handler) Register(r chi.Router) {
	r.Get("/profile", h.HandleProfile)
	r.Post("/logout", h.HandleLogout)
	r.With(authmw.RequireDomainLead(h.logger)).Get("/domain-lead", h.HandleDomainLead)
}

// HandleLogin handles POST /api/admin/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logFailure(ctx, "admin login failed", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		Message:   "Login successful",
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Admin:     res.Admin.ToView(),
	})
}

// HandleProfile handles GET /api/admin/profile.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	admin, err := h.service.Profile(ctx)
	if err != nil {
		h.logFailure(ctx, "admin profile lookup failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ProfileResponse{
		Message: "Admin profile retrieved successfully",
		Admin:   admin.ToView(),
	})
}

// HandleLogout handles POST /api/admin/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	at, err := h.service.Logout(ctx)
	if err != nil {
		h.logFailure(ctx, "admin logout failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LogoutResponse{
		Message:   "Logout successful",
		Timestamp: at,
	})
}

// HandleDomainLead handles GET /api/admin/domain-lead.
func (h *Handler) HandleDomainLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role := requestcontext.Role(ctx).String()
	var d *string
	if dom := requestcontext.Domain(ctx); dom != "" {
		s := dom.String()
		d = &s
	}
	httputil.WriteJSON(w, http.StatusOK, DomainLeadResponse{
		Message: "Domain lead access granted",
		Admin: DomainLeadAdmin{
			ID:     requestcontext.AdminID(ctx).Hex(),
			Role:   role,
			Domain: d,
		},
		Role:   role,
		Domain: d,
	})
}

// logFailure logs client errors at WARN and everything else at ERROR.
func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	}
	if de, ok := dErrors.From(err); ok && de.Code != dErrors.CodeInternal {
		h.logger.WarnContext(ctx, msg, attrs...)
		return
	}
	h.logger.ErrorContext(ctx, msg, attrs...)
}
