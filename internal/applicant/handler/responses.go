package handler

import (
	"hrcc/internal/applicant/models"
	"hrcc/internal/applicant/service"
)

type RegisteredUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	SRMEmail     string `json:"srmEmail"`
	RegNo        string `json:"regNo"`
	Branch       string `json:"branch"`
	Department   string `json:"department"`
	YearOfStudy  int    `json:"yearOfStudy"`
	Domain       string `json:"domain"`
	LinkedInLink string `json:"linkedinLink,omitempty"`
}

type RegisterResponse struct {
	Message string         `json:"message"`
	User    RegisteredUser `json:"user"`
}

func toRegisteredUser(a *models.Applicant) RegisteredUser {
	return RegisteredUser{
		ID:           a.ID.Hex(),
		Name:         a.Name,
		Email:        a.Email,
		Phone:        a.Phone,
		SRMEmail:     a.SRMEmail,
		RegNo:        a.RegNo,
		Branch:       a.Branch,
		Department:   a.Department,
		YearOfStudy:  a.YearOfStudy,
		Domain:       a.Domain.String(),
		LinkedInLink: a.LinkedInLink,
	}
}

type ListResponse struct {
	Message    string              `json:"message"`
	Users      []*models.Applicant `json:"users"`
	Pagination models.Pagination   `json:"pagination"`
}

type UserResponse struct {
	Message string            `json:"message"`
	User    *models.Applicant `json:"user"`
}

type BulkStatusResponse struct {
	Message string `json:"message"`
	models.BulkResult
	UpdatedCount int64 `json:"updatedCount"`
}

type StatsResponse struct {
	Message string        `json:"message"`
	Stats   *models.Stats `json:"stats"`
}

type TaskResponse struct {
	Message       string           `json:"message"`
	Task          models.Task      `json:"task"`
	AssignedUsers []models.Summary `json:"assignedUsers"`
}

type ShortlistTaskResponse struct {
	Message       string               `json:"message"`
	Task          models.Task          `json:"task"`
	EmailDetails  service.EmailDetails `json:"emailDetails"`
	AssignedUsers []models.Summary     `json:"assignedUsers"`
}

type NotifyResponse struct {
	Message string `json:"message"`
	*service.NotifyReport
}
