package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Query selects applicants within one domain. Zero values do not filter.
// Search is matched literally and case-insensitively.
type Query struct {
	Status Status
	Search string
	Skip   int
	Limit  int
}

// SearchFields are matched by Query.Search.
var SearchFields = []string{"name", "email", "srmEmail", "regNo", "branch"}

// CountFilter narrows a count. Zero values do not filter.
type CountFilter struct {
	Status Status
	Year   int
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalUsers  int64 `json:"totalUsers"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPagination computes page metadata.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalUsers:  total,
		HasNext:     int64(page)*int64(limit) < total,
		HasPrev:     page > 1,
	}
}

// ListResult is one page of applicants.
type ListResult struct {
	Applicants []*Applicant
	Pagination Pagination
}

type BulkResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type BranchCount struct {
	Branch string `bson:"_id" json:"branch"`
	Count  int64  `bson:"count" json:"count"`
}

type Stats struct {
	TotalUsers      int64            `json:"totalUsers"`
	StatusBreakdown map[Status]int64 `json:"statusBreakdown"`
	YearBreakdown   map[string]int64 `json:"yearBreakdown"`
	BranchBreakdown []BranchCount    `json:"branchBreakdown"`
}

// Assignment is the outcome of sending a task.
type Assignment struct {
	Task          Task
	AssignedUsers []Summary
}

// IDs returns the applicant ids in order.
func IDs(applicants []*Applicant) []bson.ObjectID {
	ids := make([]bson.ObjectID, len(applicants))
	for i, a := range applicants {
		ids[i] = a.ID
	}
	return ids
}
