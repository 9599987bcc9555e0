package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"hrcc/internal/applicant/service"
	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
)

// FlexInt accepts a JSON number or a numeric string; HTML forms post the
// year of study as either.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
		if len(b) == 0 {
			return nil
		}
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "yearOfStudy must be a number")
	}
	*f = FlexInt(n)
	return nil
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	SRMEmail     string            `json:"srmEmail"`
	RegNo        string            `json:"regNo"`
	Branch       string            `json:"branch"`
	Department   string            `json:"department"`
	YearOfStudy  FlexInt           `json:"yearOfStudy"`
	Domain       string            `json:"domain"`
	LinkedInLink string            `json:"linkedinLink"`
	Responses    map[string]string `json:"responses"`

	parsedDomain domain.Domain
}

// Validate implements httputil.Validatable. The institutional suffix is
// checked by the handler, which owns that setting.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", r.Name},
		{"email", r.Email},
		{"phone", r.Phone},
		{"srmEmail", r.SRMEmail},
		{"regNo", r.RegNo},
		{"branch", r.Branch},
		{"department", r.Department},
		{"domain", r.Domain},
	} {
		if govalidator.IsNull(f.value) {
			missing = append(missing, f.name)
		}
	}
	if r.YearOfStudy == 0 {
		missing = append(missing, "yearOfStudy")
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation, "Missing required fields: "+strings.Join(missing, ", "))
	}

	if !govalidator.IsEmail(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "Please enter a valid email")
	}
	if !govalidator.IsEmail(r.SRMEmail) {
		return dErrors.New(dErrors.CodeValidation, "Please enter a valid SRMIST email")
	}
	if !govalidator.InRangeInt(int(r.YearOfStudy), 1, 3) {
		return dErrors.New(dErrors.CodeValidation, "yearOfStudy must be between 1 and 3")
	}
	if !govalidator.StringLength(r.Phone, "7", "20") {
		return dErrors.New(dErrors.CodeValidation, "Please enter a valid phone number")
	}
	if r.LinkedInLink != "" && !govalidator.IsURL(r.LinkedInLink) {
		return dErrors.New(dErrors.CodeValidation, "Please enter a valid LinkedIn link")
	}

	d, err := domain.ParseDomain(r.Domain)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "Invalid domain. Must be: Technical, Creatives, or Corporates")
	}
	r.parsedDomain = d
	return nil
}

func (r *RegisterRequest) ParsedDomain() domain.Domain {
	return r.parsedDomain
}

// StatusRequest is the body of PATCH /users/{userId}/status.
type StatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (r *StatusRequest) Validate() error {
	if r == nil || r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "Status is required")
	}
	return nil
}

// BulkStatusRequest is the body of PATCH /users/bulk-status.
type BulkStatusRequest struct {
	UserIDs []string `json:"userIds"`
	Status  string   `json:"status"`
	Notes   string   `json:"notes"`
}

func (r *BulkStatusRequest) Validate() error {
	if r == nil || len(r.UserIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "User IDs array is required")
	}
	if r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "Status is required")
	}
	return nil
}

// taskFields are shared by both task endpoints.
type taskFields struct {
	TaskTitle       string `json:"taskTitle"`
	TaskDescription string `json:"taskDescription"`
	Deadline        string `json:"deadline"`
	Priority        string `json:"priority"`
}

func (t *taskFields) input() (service.TaskInput, error) {
	title := strings.TrimSpace(t.TaskTitle)
	desc := strings.TrimSpace(t.TaskDescription)
	if title == "" || desc == "" {
		return service.TaskInput{}, dErrors.New(dErrors.CodeValidation, "Task title and description are required")
	}
	in := service.TaskInput{Title: title, Description: desc, Priority: strings.TrimSpace(t.Priority)}
	if dl := strings.TrimSpace(t.Deadline); dl != "" {
		parsed, err := parseDeadline(dl)
		if err != nil {
			return service.TaskInput{}, err
		}
		in.Deadline = &parsed
	}
	return in, nil
}

// parseDeadline accepts RFC 3339 timestamps and plain dates.
func parseDeadline(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, dErrors.New(dErrors.CodeValidation, "deadline must be a date or an RFC 3339 timestamp")
}

// SendTaskRequest is the body of POST /tasks/send.
type SendTaskRequest struct {
	UserIDs []string `json:"userIds"`
	taskFields

	parsed service.TaskInput
}

func (r *SendTaskRequest) Validate() error {
	if r == nil || len(r.UserIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "User IDs array is required")
	}
	in, err := r.input()
	if err != nil {
		return err
	}
	r.parsed = in
	return nil
}

// ShortlistTaskRequest is the body of POST /tasks/send-to-shortlisted.
type ShortlistTaskRequest struct {
	taskFields
	EmailSubject string `json:"emailSubject"`
	EmailBody    string `json:"emailBody"`

	parsed service.TaskInput
}

func (r *ShortlistTaskRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	in, err := r.input()
	if err != nil {
		return err
	}
	if strings.TrimSpace(r.EmailSubject) == "" || strings.TrimSpace(r.EmailBody) == "" {
		return dErrors.New(dErrors.CodeValidation, "Email subject and body are required")
	}
	r.parsed = in
	return nil
}

// NotifyRequest is the body of POST /notifications/send-to-shortlisted.
type NotifyRequest struct {
	Subject string `json:"subject"`
	DryRun  bool   `json:"dryRun"`
}

func (r *NotifyRequest) Validate() error {
	if r != nil && len(r.Subject) > 200 {
		return dErrors.New(dErrors.CodeValidation, "subject must be at most 200 characters")
	}
	return nil
}
