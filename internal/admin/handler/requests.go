package handler

import (
	"github.com/asaskevich/govalidator"

	dErrors "hrcc/pkg/domain-errors"
)

// LoginRequest is the body of POST /api/admin/login. Username may also hold
// the admin's email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements httputil.Validatable.
func (r *LoginRequest) Validate() error {
	if r == nil || govalidator.IsNull(r.Username) || govalidator.IsNull(r.Password) {
		return dErrors.New(dErrors.CodeValidation, "Username and password are required")
	}
	if !govalidator.IsByteLength(r.Username, 1, 254) || !govalidator.IsByteLength(r.Password, 1, 72) {
		return dErrors.New(dErrors.CodeValidation, "Invalid credentials format")
	}
	return nil
}
