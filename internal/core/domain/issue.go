package domain

import (
	"errors"
	"time"
)

// IssueStatus represents the lifecycle state of a reported issue.
//
// Any of the three values may be set in any order: the original product lets a
// city admin move an issue freely between states, so there is deliberately no
// transition table here.
type IssueStatus string

const (
	StatusPending    IssueStatus = "PENDING"
	StatusInProgress IssueStatus = "IN_PROGRESS"
	StatusResolved   IssueStatus = "RESOLVED"
)

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s IssueStatus) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusResolved
}

var ErrIssueNotFound = errors.New("issue not found")
var ErrSummaryUnavailable = errors.New("issue analysis unavailable")

// Issue is a citizen-reported infrastructure complaint. It belongs to exactly
// one city and one author; AuthorName is a snapshot taken at report time and is
// not kept in sync with the account record.
type Issue struct {
	ID          string      `json:"id" bson:"_id"`
	Title       string      `json:"title" bson:"title"`
	Description string      `json:"description" bson:"description"`
	Category    string      `json:"category" bson:"category"`
	Address     string      `json:"address" bson:"address"`
	City        string      `json:"city" bson:"city"`
	AuthorID    string      `json:"author_id" bson:"author_id"`
	AuthorName  string      `json:"author_name" bson:"author_name"`
	Status      IssueStatus `json:"status" bson:"status"`
	AISummary   string      `json:"ai_summary,omitempty" bson:"ai_summary,omitempty"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}
