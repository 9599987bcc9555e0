package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	dErrors "hrcc/pkg/domain-errors"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority defaults an empty value to medium.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "Invalid priority. Must be: low, medium, or high")
}

type TaskStatus string

const (
	TaskAssigned   TaskStatus = "assigned"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskOverdue    TaskStatus = "overdue"
)

// Task is embedded in every applicant it was sent to. One assignment shares
// the same task id across recipients.
type Task struct {
	ID          bson.ObjectID `bson:"_id" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Deadline    *time.Time    `bson:"deadline,omitempty" json:"deadline"`
	Priority    Priority      `bson:"priority" json:"priority"`
	Status      TaskStatus    `bson:"status" json:"status"`
	AssignedBy  bson.ObjectID `bson:"assignedBy" json:"assignedBy"`
	AssignedAt  time.Time     `bson:"assignedAt" json:"assignedAt"`
	CompletedAt *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// NewTask builds a freshly assigned task.
func NewTask(id bson.ObjectID, title, description string, deadline *time.Time, priority Priority, assignedBy bson.ObjectID, now time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Task title and description are required")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Priority:    priority,
		Status:      TaskAssigned,
		AssignedBy:  assignedBy,
		AssignedAt:  now,
	}, nil
}
