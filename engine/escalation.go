package engine

import (
	"time"

	"civicconnect-be/models"
)

const (
	deputyEscalationAge       = 2 * 24 * time.Hour
	commissionerEscalationAge = 5 * 24 * time.Hour
)

// NeedsDeputyAttention reports whether an unresolved issue has been stalled
// between 2 (inclusive) and 5 (exclusive) days. Issues being actively worked
// keep refreshing updatedAt and never show up here.
func NeedsDeputyAttention(issue models.Issue, now time.Time) bool {
	if issue.Status == models.Resolved {
		return false
	}
	age := now.Sub(issue.UpdatedAt)
	return age >= deputyEscalationAge && age < commissionerEscalationAge
}

// NeedsCommissionerAttention reports whether an unresolved issue has been
// stalled for 5 days or more. The two tiers never overlap: at exactly 5 days
// an issue moves from the deputy's list to the commissioner's.
func NeedsCommissionerAttention(issue models.Issue, now time.Time) bool {
	if issue.Status == models.Resolved {
		return false
	}
	return now.Sub(issue.UpdatedAt) >= commissionerEscalationAge
}

// EscalatedFor filters the collection down to the issues needing the given
// supervisory role's attention. Roles without an escalation view get nothing.
func EscalatedFor(role models.Role, issues []models.Issue, now time.Time) []models.Issue {
	var pred func(models.Issue, time.Time) bool
	switch role {
	case models.RoleDeputyCommissioner:
		pred = NeedsDeputyAttention
	case models.RoleMunicipalCommissioner:
		pred = NeedsCommissionerAttention
	default:
		return nil
	}

	escalated := make([]models.Issue, 0)
	for _, issue := range issues {
		if pred(issue, now) {
			escalated = append(escalated, issue)
		}
	}
	return escalated
}
