package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrcc/internal/applicant/models"
	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/platform/httputil"
	"hrcc/pkg/requestcontext"
)

// Registrar creates applicants.
type Registrar interface {
	Register(ctx context.Context, reg models.Registration) (*models.Applicant, error)
}

// RegisterHandler serves the public registration endpoint.
type RegisterHandler struct {
	registrar         Registrar
	institutionDomain string
	logger            *slog.Logger
}

func NewRegisterHandler(registrar Registrar, institutionDomain string, logger *slog.Logger) *RegisterHandler {
	return &RegisterHandler{
		registrar:         registrar,
		institutionDomain: strings.ToLower(strings.TrimPrefix(institutionDomain, "@")),
		logger:            logger,
	}
}

func (h *RegisterHandler) Register(r chi.Router) {
	r.Post("/register", h.HandleRegister)
}

// HandleRegister handles POST /api/auth/register.
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if h.institutionDomain != "" && !strings.HasSuffix(strings.ToLower(req.SRMEmail), "@"+h.institutionDomain) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "Please enter a valid SRMIST email"))
		return
	}

	applicant, err := h.registrar.Register(ctx, models.Registration{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		SRMEmail:     req.SRMEmail,
		RegNo:        req.RegNo,
		Branch:       req.Branch,
		Department:   req.Department,
		YearOfStudy:  int(req.YearOfStudy),
		Domain:       req.ParsedDomain(),
		LinkedInLink: req.LinkedInLink,
		Responses:    req.Responses,
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "registration failed", "request_id", requestID, "error", err)
		} else {
			h.logger.WarnContext(ctx, "registration rejected", "request_id", requestID, "error", err)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message: "Registration successful.",
		User:    toRegisteredUser(applicant),
	})
}
