package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hrcc/internal/applicant/models"
	"hrcc/internal/platform/metrics"
	dErrors "hrcc/pkg/domain-errors"
	audit "hrcc/pkg/platform/audit"
	"hrcc/pkg/platform/sentinel"
	"hrcc/pkg/requestcontext"
)

// ApplicantCreator is the store capability registration needs.
type ApplicantCreator interface {
	Create(ctx context.Context, a *models.Applicant) error
}

// Registrar creates applicants from the public registration form.
type Registrar struct {
	store   ApplicantCreator
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor Auditor
}

type RegistrarOption func(*Registrar)

// WithRegistrationAuditor records every accepted registration.
func WithRegistrationAuditor(a Auditor) RegistrarOption {
	return func(r *Registrar) {
		r.auditor = a
	}
}

func NewRegistrar(store ApplicantCreator, logger *slog.Logger, m *metrics.Metrics, opts ...RegistrarOption) *Registrar {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registrar{store: store, logger: logger, metrics: m}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores a new applicant. A unique field collision is reported as
// a conflict naming every colliding field.
func (r *Registrar) Register(ctx context.Context, reg models.Registration) (*models.Applicant, error) {
	a, err := models.NewApplicant(bson.NewObjectID(), reg, requestcontext.Now(ctx))
	if err != nil {
		r.inc(reg, "invalid")
		msg := "invalid registration"
		if de, ok := dErrors.From(err); ok {
			msg = de.Message
		}
		return nil, dErrors.New(dErrors.CodeValidation, msg)
	}

	if err := r.store.Create(ctx, a); err != nil {
		var dup *models.DuplicateError
		if errors.As(err, &dup) {
			r.inc(reg, "duplicate")
			return nil, dErrors.New(dErrors.CodeConflict, "Duplicate value for: "+strings.Join(dup.Fields, ", "))
		}
		if errors.Is(err, sentinel.ErrConflict) {
			r.inc(reg, "duplicate")
			return nil, dErrors.New(dErrors.CodeConflict, "Duplicate value")
		}
		r.inc(reg, "error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register applicant")
	}

	r.inc(reg, "created")
	r.logger.InfoContext(ctx, "applicant registered",
		"applicant_id", a.ID.Hex(),
		"domain", a.Domain,
		"request_id", requestcontext.RequestID(ctx),
	)
	if r.auditor != nil {
		err := r.auditor.Emit(ctx, audit.Event{
			Action:   audit.ActionApplicantRegistered,
			Domain:   a.Domain.String(),
			Subjects: []string{a.ID.Hex()},
		})
		if err != nil {
			r.logger.WarnContext(ctx, "audit emit failed", "action", audit.ActionApplicantRegistered, "error", err)
		}
	}
	return a, nil
}

func (r *Registrar) inc(reg models.Registration, outcome string) {
	if r.metrics != nil {
		r.metrics.IncRegistration(reg.Domain.String(), outcome)
	}
}
