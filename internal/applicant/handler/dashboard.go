package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrcc/internal/applicant/models"
	"hrcc/internal/applicant/service"
	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
	"hrcc/pkg/platform/httputil"
	"hrcc/pkg/requestcontext"
)

// Dashboard defines the review operations of one domain.
type Dashboard interface {
	Domain() domain.Domain
	List(ctx context.Context, f service.ListFilter) (*models.ListResult, error)
	Shortlisted(ctx context.Context, f service.ListFilter) (*models.ListResult, error)
	Get(ctx context.Context, id string) (*models.Applicant, error)
	UpdateStatus(ctx context.Context, id, status, notes string) (*models.Applicant, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status, notes string) (models.BulkResult, error)
	SendTask(ctx context.Context, ids []string, in service.TaskInput) (*models.Assignment, error)
	Stats(ctx context.Context) (*models.Stats, error)
	SendTaskToShortlisted(ctx context.Context, in service.ShortlistTaskInput) (*service.ShortlistAssignment, error)
	NotifyShortlisted(ctx context.Context, subject string, dryRun bool) (*service.NotifyReport, error)
}

// DashboardHandler exposes one domain's dashboard. The router mounts one
// instance per domain behind RequireAuth and RequireDomain.
type DashboardHandler struct {
	dashboard Dashboard
	label     string
	logger    *slog.Logger
}

func NewDashboardHandler(dashboard Dashboard, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		label:     dashboard.Domain().Label(),
		logger:    logger,
	}
}

// Register mounts the dashboard routes.
func (h *DashboardHandler) Register(r chi.Router) {
	r.Get("/users", h.HandleList)
	r.Get("/stats", h.HandleStats)
	r.Patch("/users/bulk-status", h.HandleBulkStatus)
	r.Get("/users/{userId}", h.HandleGet)
	r.Patch("/users/{userId}/status", h.HandleStatus)
	r.Post("/tasks/send", h.HandleSendTask)
	r.Get("/shortlisted", h.HandleShortlisted)
	r.Post("/tasks/send-to-shortlisted", h.HandleSendToShortlisted)
	r.Post("/notifications/send-to-shortlisted", h.HandleNotifyShortlisted)
}

func (h *DashboardHandler) lower() string {
	return strings.ToLower(h.label)
}

func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"admin_id", requestcontext.AdminID(ctx).Hex(),
		"domain", h.dashboard.Domain(),
		"error", err,
	}
	if de, ok := dErrors.From(err); ok && de.Code != dErrors.CodeInternal {
		h.logger.WarnContext(ctx, op+" rejected", attrs...)
	} else {
		h.logger.ErrorContext(ctx, op+" failed", attrs...)
	}
	httputil.WriteError(w, err)
}

// parseListFilter reads page, limit, status and search. Absent page or limit
// keep their defaults; anything else must be a positive integer.
func parseListFilter(r *http.Request) (service.ListFilter, error) {
	q := r.URL.Query()
	f := service.ListFilter{Status: q.Get("status"), Search: q.Get("search")}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &f.Page}, {"limit", &f.Limit}} {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return f, dErrors.New(dErrors.CodeValidation, p.name+" must be a positive integer")
		}
		*p.dst = n
	}
	return f, nil
}

// HandleList handles GET /users.
func (h *DashboardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	f, err := parseListFilter(r)
	if err != nil {
		h.fail(w, r, "list applicants", err)
		return
	}
	res, err := h.dashboard.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, "list applicants", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{
		Message:    h.label + " users retrieved successfully",
		Users:      nonNil(res.Applicants),
		Pagination: res.Pagination,
	})
}

// HandleShortlisted handles GET /shortlisted.
func (h *DashboardHandler) HandleShortlisted(w http.ResponseWriter, r *http.Request) {
	f, err := parseListFilter(r)
	if err != nil {
		h.fail(w, r, "list shortlisted", err)
		return
	}
	res, err := h.dashboard.Shortlisted(r.Context(), f)
	if err != nil {
		h.fail(w, r, "list shortlisted", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{
		Message:    "Shortlisted " + h.lower() + " users retrieved successfully",
		Users:      nonNil(res.Applicants),
		Pagination: res.Pagination,
	})
}

func nonNil(a []*models.Applicant) []*models.Applicant {
	if a == nil {
		return []*models.Applicant{}
	}
	return a
}

// HandleGet handles GET /users/{userId}.
func (h *DashboardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.dashboard.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.fail(w, r, "get applicant", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, UserResponse{
		Message: h.label + " user retrieved successfully",
		User:    a,
	})
}

// HandleStatus handles PATCH /users/{userId}/status.
func (h *DashboardHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[StatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	a, err := h.dashboard.UpdateStatus(ctx, chi.URLParam(r, "userId"), req.Status, req.Notes)
	if err != nil {
		h.fail(w, r, "update applicant status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, UserResponse{
		Message: fmt.Sprintf("User status updated to %s successfully", a.Status),
		User:    a,
	})
}

// HandleBulkStatus handles PATCH /users/bulk-status.
func (h *DashboardHandler) HandleBulkStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[BulkStatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	res, err := h.dashboard.BulkUpdateStatus(ctx, req.UserIDs, req.Status, req.Notes)
	if err != nil {
		h.fail(w, r, "bulk update applicant status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BulkStatusResponse{
		Message:      fmt.Sprintf("Status updated to %s for %d users successfully", req.Status, res.ModifiedCount),
		BulkResult:   res,
		UpdatedCount: res.ModifiedCount,
	})
}

// HandleSendTask handles POST /tasks/send.
func (h *DashboardHandler) HandleSendTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SendTaskRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	out, err := h.dashboard.SendTask(ctx, req.UserIDs, req.parsed)
	if err != nil {
		h.fail(w, r, "send task", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TaskResponse{
		Message:       fmt.Sprintf("Task sent to %d %s users successfully", len(out.AssignedUsers), h.lower()),
		Task:          out.Task,
		AssignedUsers: out.AssignedUsers,
	})
}

// HandleStats handles GET /stats.
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		h.fail(w, r, "compute statistics", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StatsResponse{
		Message: h.label + " domain statistics retrieved successfully",
		Stats:   stats,
	})
}

// HandleSendToShortlisted handles POST /tasks/send-to-shortlisted.
func (h *DashboardHandler) HandleSendToShortlisted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ShortlistTaskRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	out, err := h.dashboard.SendTaskToShortlisted(ctx, service.ShortlistTaskInput{
		TaskInput:    req.parsed,
		EmailSubject: req.EmailSubject,
		EmailBody:    req.EmailBody,
	})
	if err != nil {
		h.fail(w, r, "send task to shortlisted", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ShortlistTaskResponse{
		Message:       fmt.Sprintf("Task assigned and email sent to %d shortlisted %s users", out.Email.Recipients, h.lower()),
		Task:          out.Task,
		EmailDetails:  out.Email,
		AssignedUsers: out.AssignedUsers,
	})
}

// HandleNotifyShortlisted handles POST /notifications/send-to-shortlisted.
func (h *DashboardHandler) HandleNotifyShortlisted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[NotifyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	report, err := h.dashboard.NotifyShortlisted(ctx, req.Subject, req.DryRun)
	if err != nil {
		h.fail(w, r, "notify shortlisted", err)
		return
	}
	msg := fmt.Sprintf("Shortlist notification sent to %d of %d %s users", report.Sent, len(report.Recipients), h.lower())
	if report.DryRun {
		msg = fmt.Sprintf("Dry run: %d shortlisted %s users would be notified", len(report.Recipients), h.lower())
	}
	httputil.WriteJSON(w, http.StatusOK, NotifyResponse{Message: msg, NotifyReport: report})
}
