package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	dErrors "hrcc/pkg/domain-errors"
	"hrcc/pkg/domain"
)

// Admin is a dashboard operator. PasswordHash never leaves the server.
type Admin struct {
	ID           bson.ObjectID `bson:"_id"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password"`
	Role         domain.Role   `bson:"role"`
	Domain       domain.Domain `bson:"domain,omitempty"`
	IsActive     bool          `bson:"isActive"`
	LastLogin    *time.Time    `bson:"lastLogin,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

// NewAdmin builds an active admin and enforces the role/domain pairing: a
// lead carries exactly its own domain, super_admin carries none.
func NewAdmin(id bson.ObjectID, username, email, passwordHash string, role domain.Role, d domain.Domain, now time.Time) (*Admin, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "username is required")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email is required")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "password hash is required")
	}
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid role")
	}
	if role.IsSuperAdmin() {
		d = ""
	} else {
		lead, _ := role.LeadDomain()
		if d == "" {
			d = lead
		}
		if d != lead {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "domain does not match role")
		}
	}
	return &Admin{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Domain:       d,
		IsActive:     true,
		CreatedAt:    now,
	}, nil
}

// View is the admin as returned to clients.
type View struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Domain    *string    `json:"domain"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToView strips the password hash. Domain is null for super_admin.
func (a *Admin) ToView() View {
	v := View{
		ID:        a.ID.Hex(),
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role.String(),
		IsActive:  a.IsActive,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
	}
	if a.Domain != "" {
		d := a.Domain.String()
		v.Domain = &d
	}
	return v
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *Admin
}
