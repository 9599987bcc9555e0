package models

import (
	"strings"

	dErrors "hrcc/pkg/domain-errors"
)

// Status is an applicant's review state. Transitions are free-form within
// the deployment's vocabulary.
type Status string

const (
	StatusActive      Status = "active"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusOmitted     Status = "omitted"
	StatusHolded      Status = "holded"
)

func (s Status) String() string {
	return string(s)
}

// Vocabulary is the set of statuses a deployment accepts: three fixed values
// plus one hold word, either omitted or holded.
type Vocabulary struct {
	hold Status
}

// DefaultVocabulary uses omitted as the hold word.
var DefaultVocabulary = Vocabulary{hold: StatusOmitted}

// NewVocabulary selects the hold word. Empty selects omitted.
func NewVocabulary(hold string) (Vocabulary, error) {
	switch Status(strings.ToLower(strings.TrimSpace(hold))) {
	case "", StatusOmitted:
		return Vocabulary{hold: StatusOmitted}, nil
	case StatusHolded:
		return Vocabulary{hold: StatusHolded}, nil
	}
	return Vocabulary{}, dErrors.New(dErrors.CodeInvalidInput, "hold status must be omitted or holded")
}

// Hold returns the configured hold word.
func (v Vocabulary) Hold() Status {
	if v.hold == "" {
		return StatusOmitted
	}
	return v.hold
}

// Statuses lists the vocabulary in display order.
func (v Vocabulary) Statuses() []Status {
	return []Status{StatusActive, StatusShortlisted, StatusRejected, v.Hold()}
}

// Parse validates s against the vocabulary. The hold word that was not
// selected is rejected like any other unknown value.
func (v Vocabulary) Parse(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "Status is required")
	}
	for _, st := range v.Statuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", dErrors.New(dErrors.CodeValidation, "Invalid status. Must be: "+v.describe())
}

func (v Vocabulary) describe() string {
	return "active, shortlisted, rejected, or " + string(v.Hold())
}
