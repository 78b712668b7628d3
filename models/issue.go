package models

import (
	"time"
)

// IssueCategory enum
type IssueCategory string

const (
	Pothole     IssueCategory = "Pothole"
	Streetlight IssueCategory = "Broken Streetlight"
	Trash       IssueCategory = "Trash & Recycling"
	Graffiti    IssueCategory = "Graffiti"
	Parks       IssueCategory = "Parks & Recreation"
	Other       IssueCategory = "Other"
)

// Categories lists every valid issue category.
var Categories = []IssueCategory{Pothole, Streetlight, Trash, Graffiti, Parks, Other}

// ValidCategory reports whether s is one of the known categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	Submitted  IssueStatus = "Submitted"
	InProgress IssueStatus = "In Progress"
	Resolved   IssueStatus = "Resolved"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case Submitted, InProgress, Resolved:
		return true
	}
	return false
}

// IssuePriority is the tier derived from the priority score. It is never set
// directly; every score change recomputes it.
type IssuePriority string

const (
	Low    IssuePriority = "Low"
	Medium IssuePriority = "Medium"
	High   IssuePriority = "High"
)

// Departments a city issue can be routed to.
var Departments = []string{
	"Public Works",
	"Parks & Recreation",
	"Sanitation",
	"Transportation",
	"Code Enforcement",
}

// Workers available for assignment.
var Workers = []string{
	"John Smith",
	"Maria Garcia",
	"David Chen",
	"Emily Rodriguez",
	"Michael Johnson",
}

// CategoryDepartment maps each category to its default department.
var CategoryDepartment = map[IssueCategory]string{
	Pothole:     "Public Works",
	Streetlight: "Public Works",
	Trash:       "Sanitation",
	Graffiti:    "Code Enforcement",
	Parks:       "Parks & Recreation",
	Other:       "Public Works",
}

// HistoryEntry is an immutable audit record of a status-relevant change.
type HistoryEntry struct {
	Status    IssueStatus `bson:"status" json:"status"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
	Note      string      `bson:"note" json:"note"`
}

// Issue represents a civic issue reported by a citizen.
//
// Invariants maintained by the store and lifecycle service: Priority is
// always the tier implied by PriorityScore, Deadline is always CreatedAt plus
// the score-dependent offset, History only grows (newest first), and
// LocationHash never changes after creation.
type Issue struct {
	ID             string         `bson:"_id" json:"id"`
	Title          string         `bson:"title" json:"title"`
	Description    string         `bson:"description" json:"description"`
	Category       IssueCategory  `bson:"category" json:"category"`
	Location       string         `bson:"location" json:"location"`
	Latitude       *float64       `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude      *float64       `bson:"longitude,omitempty" json:"longitude,omitempty"`
	LocationHash   string         `bson:"locationHash" json:"locationHash"`
	ImageURL       *string        `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Status         IssueStatus    `bson:"status" json:"status"`
	Priority       IssuePriority  `bson:"priority" json:"priority"`
	PriorityScore  int            `bson:"priorityScore" json:"priorityScore"`
	Deadline       time.Time      `bson:"deadline" json:"deadline"`
	ReporterID     string         `bson:"reporterId" json:"reporterId"`
	ReporterName   string         `bson:"reporterName" json:"reporterName"`
	AssignedTo     string         `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	AssignedWorker string         `bson:"assignedWorker,omitempty" json:"assignedWorker,omitempty"`
	Notes          []string       `bson:"notes" json:"notes"`
	History        []HistoryEntry `bson:"history" json:"history"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
	Revision       int64          `bson:"revision" json:"revision"`
}
