// Package service implements the domain dashboard and applicant
// registration. One Dashboard serves one domain; every store call it makes is
// scoped to that domain.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"hrcc/internal/applicant/models"
	"hrcc/internal/mailer"
	"hrcc/internal/platform/metrics"
	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
	audit "hrcc/pkg/platform/audit"
	"hrcc/pkg/platform/sentinel"
	pstrings "hrcc/pkg/platform/strings"
	"hrcc/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

// Store is the applicant persistence the dashboard needs. Every method takes
// the domain it must filter by.
type Store interface {
	Create(ctx context.Context, a *models.Applicant) error
	FindInDomain(ctx context.Context, d domain.Domain, id bson.ObjectID) (*models.Applicant, error)
	List(ctx context.Context, d domain.Domain, q models.Query) ([]*models.Applicant, int64, error)
	FindManyInDomain(ctx context.Context, d domain.Domain, ids []bson.ObjectID) ([]*models.Applicant, error)
	UpdateStatus(ctx context.Context, d domain.Domain, id bson.ObjectID, status models.Status, notes string, at time.Time) (*models.Applicant, error)
	BulkUpdateStatus(ctx context.Context, d domain.Domain, ids []bson.ObjectID, status models.Status, notes string, at time.Time) (models.BulkResult, error)
	AssignTask(ctx context.Context, d domain.Domain, ids []bson.ObjectID, task models.Task, at time.Time) (int64, error)
	Count(ctx context.Context, d domain.Domain, f models.CountFilter) (int64, error)
	BranchBreakdown(ctx context.Context, d domain.Domain) ([]models.BranchCount, error)
}

// Auditor records committed changes.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

const tracerName = "hrcc/applicant"

// Dashboard serves the review operations for one domain.
type Dashboard struct {
	domain           domain.Domain
	store            Store
	vocab            models.Vocabulary
	sender           mailer.Sender
	emailConcurrency int
	logger           *slog.Logger
	metrics          *metrics.Metrics
	tracer           trace.Tracer
	auditor          Auditor
}

type Option func(*Dashboard)

func WithVocabulary(v models.Vocabulary) Option {
	return func(d *Dashboard) {
		d.vocab = v
	}
}

// WithMailer sets the sender used for task and shortlist emails.
func WithMailer(sender mailer.Sender) Option {
	return func(d *Dashboard) {
		d.sender = sender
	}
}

func WithEmailConcurrency(n int) Option {
	return func(d *Dashboard) {
		d.emailConcurrency = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dashboard) {
		d.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(d *Dashboard) {
		d.tracer = t
	}
}

func WithAuditor(a Auditor) Option {
	return func(d *Dashboard) {
		d.auditor = a
	}
}

// NewDashboard builds the dashboard for d.
func NewDashboard(d domain.Domain, store Store, opts ...Option) (*Dashboard, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("dashboard domain %q: %w", d, sentinel.ErrInvalidState)
	}
	if store == nil {
		return nil, fmt.Errorf("dashboard store is required: %w", sentinel.ErrInvalidState)
	}
	svc := &Dashboard{
		domain:           d,
		store:            store,
		vocab:            models.DefaultVocabulary,
		emailConcurrency: mailer.DefaultConcurrency,
		logger:           slog.Default(),
		tracer:           otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Domain returns the domain this dashboard is scoped to.
func (s *Dashboard) Domain() domain.Domain {
	return s.domain
}

// Vocabulary returns the accepted statuses.
func (s *Dashboard) Vocabulary() models.Vocabulary {
	return s.vocab
}

func (s *Dashboard) start(ctx context.Context, op string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "dashboard."+op, trace.WithAttributes(
		attribute.String("hrcc.domain", s.domain.String()),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Dashboard) notFound() error {
	return dErrors.New(dErrors.CodeNotFound, s.domain.Label()+" user not found")
}

// ListFilter is the dashboard list input after query parsing.
type ListFilter struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// normalize applies defaults; zero page or limit means "not supplied".
// Limits above MaxLimit are clamped.
func (f ListFilter) normalize() (ListFilter, error) {
	if f.Page < 0 || f.Limit < 0 {
		return f, dErrors.New(dErrors.CodeValidation, "page and limit must be positive integers")
	}
	if f.Page == 0 {
		f.Page = models.DefaultPage
	}
	if f.Limit == 0 {
		f.Limit = models.DefaultLimit
	}
	if f.Limit > models.MaxLimit {
		f.Limit = models.MaxLimit
	}
	f.Search = strings.TrimSpace(f.Search)
	return f, nil
}

// List returns one page of applicants in this domain, newest first.
func (s *Dashboard) List(ctx context.Context, f ListFilter) (res *models.ListResult, err error) {
	ctx, span := s.start(ctx, "List")
	defer func() { endSpan(span, err) }()

	f, err = f.normalize()
	if err != nil {
		return nil, err
	}
	var status models.Status
	if strings.TrimSpace(f.Status) != "" {
		if status, err = s.vocab.Parse(f.Status); err != nil {
			return nil, err
		}
	}
	return s.list(ctx, f, status)
}

func (s *Dashboard) list(ctx context.Context, f ListFilter, status models.Status) (*models.ListResult, error) {
	applicants, total, err := s.store.List(ctx, s.domain, models.Query{
		Status: status,
		Search: f.Search,
		Skip:   (f.Page - 1) * f.Limit,
		Limit:  f.Limit,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applicants")
	}
	return &models.ListResult{
		Applicants: applicants,
		Pagination: models.NewPagination(f.Page, f.Limit, total),
	}, nil
}

// Shortlisted lists shortlisted applicants in this domain.
func (s *Dashboard) Shortlisted(ctx context.Context, f ListFilter) (res *models.ListResult, err error) {
	ctx, span := s.start(ctx, "Shortlisted")
	defer func() { endSpan(span, err) }()

	f, err = f.normalize()
	if err != nil {
		return nil, err
	}
	return s.list(ctx, f, models.StatusShortlisted)
}

// Get returns one applicant. A malformed id, a missing id and an applicant
// of another domain are all reported as not found.
func (s *Dashboard) Get(ctx context.Context, rawID string) (a *models.Applicant, err error) {
	ctx, span := s.start(ctx, "Get")
	defer func() { endSpan(span, err) }()

	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, s.notFound()
	}
	a, err = s.store.FindInDomain(ctx, s.domain, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.notFound()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load applicant")
	}
	return a, nil
}

// UpdateStatus sets the status and replaces the notes.
func (s *Dashboard) UpdateStatus(ctx context.Context, rawID, rawStatus, notes string) (a *models.Applicant, err error) {
	ctx, span := s.start(ctx, "UpdateStatus")
	defer func() { endSpan(span, err) }()

	status, err := s.vocab.Parse(rawStatus)
	if err != nil {
		return nil, err
	}
	id, err := domain.ParseID(rawID)
	if err != nil {
		return nil, s.notFound()
	}

	a, err = s.store.UpdateStatus(ctx, s.domain, id, status, strings.TrimSpace(notes), requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.notFound()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update applicant status")
	}

	s.addStatusUpdates(status, 1)
	s.logger.InfoContext(ctx, "applicant status updated",
		"applicant_id", a.ID.Hex(),
		"status", status,
		"domain", s.domain,
		"admin_id", requestcontext.AdminID(ctx).Hex(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.audit(ctx, audit.ActionStatusUpdated, []bson.ObjectID{a.ID}, string(status))
	return a, nil
}

// BulkUpdateStatus updates every listed applicant in this domain. Malformed
// or unknown ids simply do not match. The update is not transactional across
// applicants.
func (s *Dashboard) BulkUpdateStatus(ctx context.Context, rawIDs []string, rawStatus, notes string) (res models.BulkResult, err error) {
	ctx, span := s.start(ctx, "BulkUpdateStatus")
	defer func() { endSpan(span, err) }()

	if len(rawIDs) == 0 {
		return res, dErrors.New(dErrors.CodeValidation, "User IDs array is required")
	}
	status, err := s.vocab.Parse(rawStatus)
	if err != nil {
		return res, err
	}

	ids, skipped := domain.ParseIDs(rawIDs)
	if len(ids) > 0 {
		res, err = s.store.BulkUpdateStatus(ctx, s.domain, ids, status, strings.TrimSpace(notes), requestcontext.Now(ctx))
		if err != nil {
			return res, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update applicant statuses")
		}
	}
	span.SetAttributes(attribute.Int64("hrcc.matched", res.MatchedCount))
	if res.MatchedCount == 0 {
		return res, dErrors.New(dErrors.CodeNotFound, "No "+strings.ToLower(s.domain.Label())+" users found with provided IDs")
	}

	s.addStatusUpdates(status, int(res.ModifiedCount))
	s.logger.InfoContext(ctx, "applicant statuses updated",
		"status", status,
		"domain", s.domain,
		"requested", len(rawIDs),
		"malformed", skipped,
		"matched", res.MatchedCount,
		"modified", res.ModifiedCount,
		"admin_id", requestcontext.AdminID(ctx).Hex(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.audit(ctx, audit.ActionBulkStatusUpdated, ids, string(status))
	return res, nil
}

// TaskInput describes a task to assign.
type TaskInput struct {
	Title       string
	Description string
	Deadline    *time.Time
	Priority    string
}

func (s *Dashboard) newTask(ctx context.Context, in TaskInput) (*models.Task, error) {
	priority, err := models.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	return models.NewTask(bson.NewObjectID(), in.Title, in.Description, in.Deadline, priority,
		requestcontext.AdminID(ctx), requestcontext.Now(ctx))
}

// SendTask assigns a task to the listed applicants. Every id must name an
// applicant of this domain or nothing is assigned.
func (s *Dashboard) SendTask(ctx context.Context, rawIDs []string, in TaskInput) (out *models.Assignment, err error) {
	ctx, span := s.start(ctx, "SendTask")
	defer func() { endSpan(span, err) }()

	rawIDs = pstrings.DedupeAndTrim(rawIDs)
	if len(rawIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "User IDs array is required")
	}
	task, err := s.newTask(ctx, in)
	if err != nil {
		return nil, err
	}

	mismatch := dErrors.New(dErrors.CodeValidation, "Some users are not from "+strings.ToLower(s.domain.Label())+" domain or don't exist")
	ids, skipped := domain.ParseIDs(rawIDs)
	if skipped > 0 {
		return nil, mismatch
	}
	applicants, err := s.store.FindManyInDomain(ctx, s.domain, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load applicants")
	}
	if len(applicants) != len(ids) {
		return nil, mismatch
	}

	if err := s.assign(ctx, applicants, task); err != nil {
		return nil, err
	}
	return assignment(task, applicants), nil
}

func (s *Dashboard) assign(ctx context.Context, applicants []*models.Applicant, task *models.Task) error {
	n, err := s.store.AssignTask(ctx, s.domain, models.IDs(applicants), *task, requestcontext.Now(ctx))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to assign task")
	}
	if s.metrics != nil {
		s.metrics.AddTasksAssigned(s.domain.String(), int(n))
	}
	s.logger.InfoContext(ctx, "task assigned",
		"task_id", task.ID.Hex(),
		"domain", s.domain,
		"recipients", len(applicants),
		"updated", n,
		"admin_id", requestcontext.AdminID(ctx).Hex(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.audit(ctx, audit.ActionTaskAssigned, models.IDs(applicants), task.ID.Hex())
	return nil
}

// audit records a committed change. Failures are logged only.
func (s *Dashboard) audit(ctx context.Context, action audit.Action, ids []bson.ObjectID, detail string) {
	if s.auditor == nil {
		return
	}
	err := s.auditor.Emit(ctx, audit.Event{
		Action:   action,
		Domain:   s.domain.String(),
		Subjects: hexIDs(ids),
		Detail:   detail,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}

func hexIDs(ids []bson.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}

func assignment(task *models.Task, applicants []*models.Applicant) *models.Assignment {
	users := make([]models.Summary, len(applicants))
	for i, a := range applicants {
		users[i] = a.Summary()
	}
	return &models.Assignment{Task: *task, AssignedUsers: users}
}

// Stats counts applicants in this domain. The counts run concurrently.
func (s *Dashboard) Stats(ctx context.Context) (stats *models.Stats, err error) {
	ctx, span := s.start(ctx, "Stats")
	defer func() { endSpan(span, err) }()

	statuses := s.vocab.Statuses()
	statusCounts := make([]int64, len(statuses))
	yearCounts := make([]int64, models.MaxYear)
	var total int64
	var branches []models.BranchCount

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.store.Count(gctx, s.domain, models.CountFilter{})
		total = n
		return err
	})
	for i, st := range statuses {
		g.Go(func() error {
			n, err := s.store.Count(gctx, s.domain, models.CountFilter{Status: st})
			statusCounts[i] = n
			return err
		})
	}
	for i := range yearCounts {
		g.Go(func() error {
			n, err := s.store.Count(gctx, s.domain, models.CountFilter{Year: i + 1})
			yearCounts[i] = n
			return err
		})
	}
	g.Go(func() error {
		b, err := s.store.BranchBreakdown(gctx, s.domain)
		branches = b
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute statistics")
	}

	stats = &models.Stats{
		TotalUsers:      total,
		StatusBreakdown: make(map[models.Status]int64, len(statuses)),
		YearBreakdown:   make(map[string]int64, len(yearCounts)),
		BranchBreakdown: branches,
	}
	if stats.BranchBreakdown == nil {
		stats.BranchBreakdown = []models.BranchCount{}
	}
	for i, st := range statuses {
		stats.StatusBreakdown[st] = statusCounts[i]
	}
	for i, n := range yearCounts {
		stats.YearBreakdown[fmt.Sprintf("year%d", i+1)] = n
	}
	return stats, nil
}

func (s *Dashboard) addStatusUpdates(status models.Status, n int) {
	if s.metrics != nil {
		s.metrics.AddStatusUpdates(s.domain.String(), status.String(), n)
	}
}
