package domain

import (
	"strings"

	dErrors "hrcc/pkg/domain-errors"
)

// Domain identifies one of the three recruitment tracks.
// Invariant: the value is one of the canonical lowercase names below.
//
// Usage: construct via ParseDomain at trust boundaries; the registration form
// historically submitted "Technical", "Creatives" and "Corporates", which
// ParseDomain accepts and canonicalizes.
type Domain string

const (
	DomainTechnical Domain = "technical"
	DomainCreative  Domain = "creative"
	DomainCorporate Domain = "corporate"
)

// Domains lists every domain in display order.
var Domains = []Domain{DomainTechnical, DomainCreative, DomainCorporate}

var domainAliases = map[string]Domain{
	"technical":  DomainTechnical,
	"creative":   DomainCreative,
	"creatives":  DomainCreative,
	"corporate":  DomainCorporate,
	"corporates": DomainCorporate,
}

// ParseDomain constructs a Domain from external input, case-insensitively.
//
// Errors: returns CodeInvalidInput when the value is empty or unknown.
func ParseDomain(s string) (Domain, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "domain cannot be empty")
	}
	d, ok := domainAliases[s]
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid domain")
	}
	return d, nil
}

// IsValid reports whether d is a canonical domain.
func (d Domain) IsValid() bool {
	switch d {
	case DomainTechnical, DomainCreative, DomainCorporate:
		return true
	}
	return false
}

// Label is the human-facing name ("Technical").
func (d Domain) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

func (d Domain) String() string {
	return string(d)
}

// Role is an admin role.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleCreativeLead  Role = "creative_lead"
	RoleCorporateLead Role = "corporate_lead"
	RoleTechnicalLead Role = "technical_lead"
)

// ParseRole constructs a Role from external input.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if r == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleCreativeLead, RoleCorporateLead, RoleTechnicalLead:
		return true
	}
	return false
}

// IsSuperAdmin reports whether r bypasses every domain check.
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// IsDomainLead reports whether r is a lead role or super_admin.
func (r Role) IsDomainLead() bool {
	return r.IsValid()
}

// LeadDomain returns the domain a lead role is scoped to. super_admin has none.
func (r Role) LeadDomain() (Domain, bool) {
	switch r {
	case RoleTechnicalLead:
		return DomainTechnical, true
	case RoleCreativeLead:
		return DomainCreative, true
	case RoleCorporateLead:
		return DomainCorporate, true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}
