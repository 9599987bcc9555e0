package service

import (
	"context"
	"fmt"
	"strings"

	"hrcc/internal/applicant/models"
	"hrcc/internal/mailer"
	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/email"
	audit "hrcc/pkg/platform/audit"
	"hrcc/pkg/requestcontext"
)

// DefaultShortlistSubject is used when NotifyShortlisted gets no subject.
const DefaultShortlistSubject = "Congratulations! You have been shortlisted"

// ShortlistTaskInput is a task plus the email announcing it.
type ShortlistTaskInput struct {
	TaskInput
	EmailSubject string
	EmailBody    string
}

// EmailDetails summarizes what was sent.
type EmailDetails struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Recipients int    `json:"recipients"`
}

// ShortlistAssignment is the outcome of SendTaskToShortlisted.
type ShortlistAssignment struct {
	models.Assignment
	Email EmailDetails
}

// NotifyReport is the per-recipient outcome of NotifyShortlisted.
type NotifyReport struct {
	Subject    string          `json:"subject"`
	DryRun     bool            `json:"dryRun"`
	Sent       int             `json:"sent"`
	Failed     int             `json:"failed"`
	Recipients []mailer.Result `json:"recipients"`
}

func (s *Dashboard) shortlisted(ctx context.Context) ([]*models.Applicant, error) {
	applicants, _, err := s.store.List(ctx, s.domain, models.Query{Status: models.StatusShortlisted})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load shortlisted applicants")
	}
	if len(applicants) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "No shortlisted "+strings.ToLower(s.domain.Label())+" users found")
	}
	return applicants, nil
}

// SendTaskToShortlisted assigns a task to every shortlisted applicant of this
// domain and emails each of them. The assignment is kept when delivery
// fails; the failure is logged and reported as a generic error.
func (s *Dashboard) SendTaskToShortlisted(ctx context.Context, in ShortlistTaskInput) (out *ShortlistAssignment, err error) {
	ctx, span := s.start(ctx, "SendTaskToShortlisted")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(in.EmailSubject) == "" || strings.TrimSpace(in.EmailBody) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Email subject and body are required")
	}
	task, err := s.newTask(ctx, in.TaskInput)
	if err != nil {
		return nil, err
	}
	if s.sender == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "email delivery is not configured")
	}
	applicants, err := s.shortlisted(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.assign(ctx, applicants, task); err != nil {
		return nil, err
	}

	msgs := make([]mailer.Message, 0, len(applicants))
	for _, a := range applicants {
		name := email.DisplayName(a.Name, a.Email)
		html, rerr := mailer.RenderTask(mailer.TaskData{
			Name:            email.FirstName(name),
			Body:            in.EmailBody,
			TaskTitle:       task.Title,
			TaskDescription: task.Description,
			Deadline:        task.Deadline,
		})
		if rerr != nil {
			return nil, dErrors.Wrap(rerr, dErrors.CodeInternal, "failed to render task email")
		}
		msgs = append(msgs, mailer.Message{
			ToEmail: a.Email,
			ToName:  name,
			Subject: in.EmailSubject,
			HTML:    html,
			Text:    in.EmailBody,
		})
	}

	results, sendErr := mailer.SendAll(ctx, s.sender, msgs, s.emailConcurrency)
	s.recordEmails(results)
	if sendErr != nil {
		s.logger.ErrorContext(ctx, "task emails failed after assignment",
			"task_id", task.ID.Hex(),
			"domain", s.domain,
			"failed", countFailed(results),
			"recipients", len(results),
			"request_id", requestcontext.RequestID(ctx),
			"error", sendErr,
		)
		return nil, dErrors.Wrap(sendErr, dErrors.CodeInternal, "failed to deliver task emails")
	}

	return &ShortlistAssignment{
		Assignment: *assignment(task, applicants),
		Email: EmailDetails{
			Subject:    in.EmailSubject,
			Body:       in.EmailBody,
			Recipients: len(applicants),
		},
	}, nil
}

// NotifyShortlisted sends the shortlist notification to every shortlisted
// applicant of this domain. Delivery failures are reported per recipient
// rather than as an error. A dry run renders every message and sends none.
func (s *Dashboard) NotifyShortlisted(ctx context.Context, subject string, dryRun bool) (report *NotifyReport, err error) {
	ctx, span := s.start(ctx, "NotifyShortlisted")
	defer func() { endSpan(span, err) }()

	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultShortlistSubject
	}
	if s.sender == nil && !dryRun {
		return nil, dErrors.New(dErrors.CodeInternal, "email delivery is not configured")
	}
	applicants, err := s.shortlisted(ctx)
	if err != nil {
		return nil, err
	}

	msgs := make([]mailer.Message, 0, len(applicants))
	for _, a := range applicants {
		name := email.DisplayName(a.Name, a.Email)
		html, rerr := mailer.RenderShortlist(mailer.ShortlistData{
			Name:        email.FirstName(name),
			RegNo:       a.RegNo,
			DomainLabel: s.domain.Label(),
		})
		if rerr != nil {
			return nil, dErrors.Wrap(rerr, dErrors.CodeInternal, "failed to render shortlist email")
		}
		msgs = append(msgs, mailer.Message{
			ToEmail: a.Email,
			ToName:  name,
			Subject: subject,
			HTML:    html,
			Text:    fmt.Sprintf("Congratulations %s, you have been shortlisted for the %s domain.", a.Name, s.domain.Label()),
		})
	}

	report = &NotifyReport{Subject: subject, DryRun: dryRun}
	if dryRun {
		report.Recipients = make([]mailer.Result, len(msgs))
		for i, m := range msgs {
			report.Recipients[i] = mailer.Result{Email: m.ToEmail, Name: m.ToName}
		}
		return report, nil
	}

	results, sendErr := mailer.SendAll(ctx, s.sender, msgs, s.emailConcurrency)
	s.recordEmails(results)
	report.Recipients = results
	report.Failed = countFailed(results)
	report.Sent = len(results) - report.Failed
	s.audit(ctx, audit.ActionShortlistNotified, models.IDs(applicants), fmt.Sprintf("sent=%d failed=%d", report.Sent, report.Failed))
	if sendErr != nil {
		s.logger.WarnContext(ctx, "some shortlist notifications failed",
			"domain", s.domain,
			"failed", report.Failed,
			"sent", report.Sent,
			"request_id", requestcontext.RequestID(ctx),
			"error", sendErr,
		)
	}
	return report, nil
}

func (s *Dashboard) recordEmails(results []mailer.Result) {
	if s.metrics == nil {
		return
	}
	for _, r := range results {
		if r.Sent {
			s.metrics.IncEmail("sent")
		} else {
			s.metrics.IncEmail("failed")
		}
	}
}

func countFailed(results []mailer.Result) int {
	n := 0
	for _, r := range results {
		if !r.Sent {
			n++
		}
	}
	return n
}
