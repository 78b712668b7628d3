package engine

import (
	"time"

	"civicconnect-be/models"
)

// PriorityFromScore maps a priority score to its tier. Each additional
// distinct-reporter duplicate bumps the score by one, so the bands encode how
// many citizens have reported the same problem.
func PriorityFromScore(score int) models.IssuePriority {
	if score >= 7 {
		return models.High
	}
	if score >= 4 {
		return models.Medium
	}
	return models.Low
}

// DeadlineDays returns the resolution window in days for a score: higher
// priority means a shorter deadline.
func DeadlineDays(score int) int {
	if score >= 7 {
		return 3
	}
	if score >= 4 {
		return 7
	}
	return 14
}

// Deadline computes the absolute deadline for an issue: creation time plus
// the score-dependent offset, added in calendar days.
func Deadline(createdAt time.Time, score int) time.Time {
	return createdAt.AddDate(0, 0, DeadlineDays(score))
}
