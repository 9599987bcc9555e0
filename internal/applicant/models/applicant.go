// Package models defines applicants, their tasks and the dashboard read
// models.
package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
	"hrcc/pkg/platform/sentinel"
)

// Applicant is a registration. It is created once and afterwards mutated
// only by status updates and task assignment.
type Applicant struct {
	ID               bson.ObjectID     `bson:"_id" json:"id"`
	Name             string            `bson:"name" json:"name"`
	Email            string            `bson:"email" json:"email"`
	Phone            string            `bson:"phone" json:"phone"`
	SRMEmail         string            `bson:"srmEmail" json:"srmEmail"`
	RegNo            string            `bson:"regNo" json:"regNo"`
	Branch           string            `bson:"branch" json:"branch"`
	Department       string            `bson:"department" json:"department"`
	YearOfStudy      int               `bson:"yearOfStudy" json:"yearOfStudy"`
	Domain           domain.Domain     `bson:"domain" json:"domain"`
	LinkedInLink     string            `bson:"linkedinLink,omitempty" json:"linkedinLink,omitempty"`
	Responses        map[string]string `bson:"responses" json:"responses"`
	Status           Status            `bson:"status" json:"status"`
	Notes            string            `bson:"notes" json:"notes"`
	Tasks            []Task            `bson:"tasks" json:"tasks"`
	LastTaskAssigned *time.Time        `bson:"lastTaskAssigned,omitempty" json:"lastTaskAssigned,omitempty"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Registration carries validated registration input.
type Registration struct {
	Name         string
	Email        string
	Phone        string
	SRMEmail     string
	RegNo        string
	Branch       string
	Department   string
	YearOfStudy  int
	Domain       domain.Domain
	LinkedInLink string
	Responses    map[string]string
}

// MinYear and MaxYear bound yearOfStudy.
const (
	MinYear = 1
	MaxYear = 3
)

// NewApplicant builds an active applicant. Emails are stored lowercase so
// uniqueness is case-insensitive.
func NewApplicant(id bson.ObjectID, reg Registration, now time.Time) (*Applicant, error) {
	required := []struct{ name, value string }{
		{"name", reg.Name},
		{"email", reg.Email},
		{"phone", reg.Phone},
		{"srmEmail", reg.SRMEmail},
		{"regNo", reg.RegNo},
		{"branch", reg.Branch},
		{"department", reg.Department},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, f.name+" is required")
		}
	}
	if reg.YearOfStudy < MinYear || reg.YearOfStudy > MaxYear {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "yearOfStudy must be between 1 and 3")
	}
	if !reg.Domain.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid domain")
	}
	responses := reg.Responses
	if responses == nil {
		responses = map[string]string{}
	}
	return &Applicant{
		ID:           id,
		Name:         strings.TrimSpace(reg.Name),
		Email:        strings.ToLower(strings.TrimSpace(reg.Email)),
		Phone:        strings.TrimSpace(reg.Phone),
		SRMEmail:     strings.ToLower(strings.TrimSpace(reg.SRMEmail)),
		RegNo:        strings.TrimSpace(reg.RegNo),
		Branch:       strings.TrimSpace(reg.Branch),
		Department:   strings.TrimSpace(reg.Department),
		YearOfStudy:  reg.YearOfStudy,
		Domain:       reg.Domain,
		LinkedInLink: strings.TrimSpace(reg.LinkedInLink),
		Responses:    responses,
		Status:       StatusActive,
		Tasks:        []Task{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Summary is the short form returned for task recipients.
type Summary struct {
	ID    bson.ObjectID `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	RegNo string        `json:"regNo"`
}

func (a *Applicant) Summary() Summary {
	return Summary{ID: a.ID, Name: a.Name, Email: a.Email, RegNo: a.RegNo}
}

// DuplicateError names the unique fields a write collided with. It matches
// sentinel.ErrConflict.
type DuplicateError struct {
	Fields []string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for: %s", strings.Join(e.Fields, ", "))
}

func (e *DuplicateError) Unwrap() error {
	return sentinel.ErrConflict
}
