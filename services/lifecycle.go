// Package services holds the orchestration layer between the HTTP handlers
// and the stores: the issue lifecycle rules and the generative-API client.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"

	"civicconnect-be/apperrors"
	"civicconnect-be/engine"
	"civicconnect-be/models"
	"civicconnect-be/store"
)

// SubmitRequest is a citizen's new-issue submission.
type SubmitRequest struct {
	Title        string
	Description  string
	Location     string
	Category     models.IssueCategory
	Latitude     float64
	Longitude    float64
	ImageURL     *string
	ReporterID   string
	ReporterName string
}

// SubmitResult reports what a submission did: created a fresh record, or
// merged into an existing one and bumped its score.
type SubmitResult struct {
	Issue  models.Issue
	Merged bool
}

// Lifecycle implements the issue lifecycle: submission with the duplicate
// merge rule, updates with the resolution point award, and the escalation
// views. The submit mutex serializes the find-or-merge decision so two
// near-simultaneous reports of the same location cannot both create a record.
type Lifecycle struct {
	submitMu sync.Mutex
	issues   *store.IssueStore
	citizens *store.CitizenStore
	now      func() time.Time
}

func NewLifecycle(issues *store.IssueStore, citizens *store.CitizenStore) *Lifecycle {
	return &Lifecycle{issues: issues, citizens: citizens, now: time.Now}
}

// Submit runs the duplicate merge rule over a new-issue submission.
//
// The same physical problem reported by N distinct citizens is N times as
// urgent, so instead of strict duplicate rejection a cross-reporter duplicate
// is absorbed into the existing record as a score increase. Only the original
// reporter resubmitting is rejected: a citizen cannot inflate their own
// issue's score.
func (l *Lifecycle) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	if req.ReporterID == "" {
		return SubmitResult{}, apperrors.ErrNotLoggedIn
	}

	l.submitMu.Lock()
	defer l.submitMu.Unlock()

	hash := engine.LocationHash(req.Latitude, req.Longitude)

	if existing, ok := l.issues.FindActive(hash); ok {
		if existing.ReporterID == req.ReporterID {
			return SubmitResult{}, apperrors.ErrDuplicateReport
		}

		// Different reporter, same spot: escalate the existing issue. The
		// deadline is recomputed from the original creation time, and the
		// status is deliberately left untouched.
		newScore := existing.PriorityScore + 1
		note := fmt.Sprintf("Priority increased to %d due to a report from another citizen.", newScore)
		updated, err := l.issues.Update(ctx, existing.ID, existing.Revision, store.IssueUpdate{
			PriorityScore: &newScore,
		}, note)
		if err != nil {
			return SubmitResult{}, err
		}

		log.WithFields(log.Fields{
			"issue": existing.ID,
			"score": newScore,
		}).Info("duplicate report merged into existing issue")
		return SubmitResult{Issue: updated, Merged: true}, nil
	}

	now := l.now()
	issue, err := l.issues.Create(ctx, models.Issue{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Location:      req.Location,
		Latitude:      &req.Latitude,
		Longitude:     &req.Longitude,
		LocationHash:  hash,
		ImageURL:      req.ImageURL,
		PriorityScore: 1,
		ReporterID:    req.ReporterID,
		ReporterName:  req.ReporterName,
		AssignedTo:    models.CategoryDepartment[req.Category],
		CreatedAt:     now,
	})
	if err != nil {
		return SubmitResult{}, err
	}

	log.WithFields(log.Fields{
		"issue":      issue.ID,
		"category":   string(issue.Category),
		"department": issue.AssignedTo,
	}).Info("issue created")
	return SubmitResult{Issue: issue}, nil
}

// Update applies a partial update with its history note, awarding the
// original reporter 10 points when the status transitions into Resolved from
// a non-Resolved value. The pre-update status guards the award so repeated
// Resolved updates never pay twice.
func (l *Lifecycle) Update(ctx context.Context, id string, rev int64, upd store.IssueUpdate, historyNote string) (models.Issue, error) {
	before, err := l.issues.Get(id)
	if err != nil {
		return models.Issue{}, err
	}

	resolving := upd.Status != nil && *upd.Status == models.Resolved && before.Status != models.Resolved

	updated, err := l.issues.Update(ctx, id, rev, upd, historyNote)
	if err != nil {
		return models.Issue{}, err
	}

	if resolving {
		if err := l.citizens.AddPoints(ctx, before.ReporterID, 10); err != nil {
			log.WithError(err).WithField("citizen", before.ReporterID).
				Warn("could not award resolution points")
		}
	}
	return updated, nil
}

// Escalated returns the issues needing the given supervisory role's
// attention, based purely on how stale their last update is.
func (l *Lifecycle) Escalated(role models.Role) []models.Issue {
	return engine.EscalatedFor(role, l.issues.List(), l.now())
}
