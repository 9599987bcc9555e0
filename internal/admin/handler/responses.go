package handler

import (
	"time"

	"hrcc/internal/admin/models"
)

type LoginResponse struct {
	Message   string      `json:"message"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	Admin     models.View `json:"admin"`
}

type ProfileResponse struct {
	Message string      `json:"message"`
	Admin   models.View `json:"admin"`
}

type LogoutResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// DomainLeadAdmin is the caller as seen by the authorization layer.
type DomainLeadAdmin struct {
	ID     string  `json:"id"`
	Role   string  `json:"role"`
	Domain *string `json:"domain"`
}

type DomainLeadResponse struct {
	Message string          `json:"message"`
	Admin   DomainLeadAdmin `json:"admin"`
	Role    string          `json:"role"`
	Domain  *string         `json:"domain"`
}
