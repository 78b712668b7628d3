package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"civicconnect-be/apperrors"
	"civicconnect-be/engine"
	"civicconnect-be/models"
)

// IssueUpdate is the set of fields an update may change. Priority and
// deadline are not among them: both are derived from the priority score and
// recomputed whenever it changes.
type IssueUpdate struct {
	Title          *string
	Description    *string
	Location       *string
	ImageURL       *string
	Status         *models.IssueStatus
	PriorityScore  *int
	AssignedTo     *string
	AssignedWorker *string
}

// IssueStore is the record of truth for issues. The collection lives in
// memory, newest first, guarded by a single mutex, and every mutation writes
// the whole collection through the backend before it becomes visible — a
// failed save leaves prior state untouched.
type IssueStore struct {
	mu      sync.RWMutex
	backend IssueBackend
	issues  []models.Issue
	now     func() time.Time
}

func NewIssueStore(backend IssueBackend) *IssueStore {
	return &IssueStore{backend: backend, now: time.Now}
}

// Load pulls the collection from the backend, seeding the demo records when
// the backend has no (or unparseable) data.
func (s *IssueStore) Load(ctx context.Context) error {
	issues, err := s.backend.LoadIssues(ctx)
	if err != nil {
		return fmt.Errorf("load issues: %w", err)
	}
	if issues == nil {
		issues = seedIssues(s.now())
		if err := s.backend.SaveIssues(ctx, issues); err != nil {
			return fmt.Errorf("seed issues: %w", err)
		}
		log.WithField("count", len(issues)).Info("seeded demo issues")
	}

	s.mu.Lock()
	s.issues = issues
	s.mu.Unlock()
	return nil
}

// List returns a copy of the full collection, newest first.
func (s *IssueStore) List() []models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Issue, len(s.issues))
	copy(out, s.issues)
	return out
}

// Get returns the issue with the given id.
func (s *IssueStore) Get(id string) (models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, issue := range s.issues {
		if issue.ID == id {
			return issue, nil
		}
	}
	return models.Issue{}, apperrors.ErrNotFound
}

// FindActive returns the non-resolved issue at the given location hash, if
// any. Resolved issues never match: a new report at the same spot after
// resolution starts a fresh record.
func (s *IssueStore) FindActive(locationHash string) (models.Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, issue := range s.issues {
		if issue.LocationHash == locationHash && issue.Status != models.Resolved {
			return issue, true
		}
	}
	return models.Issue{}, false
}

// Create inserts a new issue: fresh id, status Submitted, a single seeded
// history entry, updatedAt equal to createdAt. Priority and deadline are
// derived from the supplied score so the caller cannot set them inconsistently.
func (s *IssueStore) Create(ctx context.Context, issue models.Issue) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = s.now()
	}
	if issue.PriorityScore < 1 {
		issue.PriorityScore = 1
	}

	issue.ID = uuid.NewString()
	issue.Status = models.Submitted
	issue.Priority = engine.PriorityFromScore(issue.PriorityScore)
	issue.Deadline = engine.Deadline(issue.CreatedAt, issue.PriorityScore)
	issue.UpdatedAt = issue.CreatedAt
	issue.Revision = 1
	issue.Notes = []string{}

	note := "Issue submitted by citizen."
	if issue.AssignedTo != "" {
		note = fmt.Sprintf("Issue submitted by citizen. Automatically assigned to %s.", issue.AssignedTo)
	}
	issue.History = []models.HistoryEntry{{
		Status:    models.Submitted,
		Timestamp: issue.CreatedAt,
		Note:      note,
	}}

	updated := make([]models.Issue, 0, len(s.issues)+1)
	updated = append(updated, issue)
	updated = append(updated, s.issues...)

	if err := s.backend.SaveIssues(ctx, updated); err != nil {
		return models.Issue{}, fmt.Errorf("save issues: %w", err)
	}
	s.issues = updated
	return issue, nil
}

// Update merges the partial fields into the issue, bumps updatedAt and the
// revision, and — when historyNote is non-empty — prepends a history entry
// carrying the post-merge status. The caller supplies the note describing
// what changed and why; the store never synthesizes one.
//
// A non-negative rev is checked against the stored revision and the update is
// refused with ErrConflict on mismatch. rev < 0 skips the check and keeps the
// original last-writer-wins behavior.
func (s *IssueStore) Update(ctx context.Context, id string, rev int64, upd IssueUpdate, historyNote string) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, issue := range s.issues {
		if issue.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Issue{}, apperrors.ErrNotFound
	}

	issue := s.issues[idx]
	if rev >= 0 && rev != issue.Revision {
		return models.Issue{}, apperrors.ErrConflict
	}

	now := s.now()
	if upd.Title != nil {
		issue.Title = *upd.Title
	}
	if upd.Description != nil {
		issue.Description = *upd.Description
	}
	if upd.Location != nil {
		issue.Location = *upd.Location
	}
	if upd.ImageURL != nil {
		issue.ImageURL = upd.ImageURL
	}
	if upd.Status != nil {
		issue.Status = *upd.Status
	}
	if upd.AssignedTo != nil {
		issue.AssignedTo = *upd.AssignedTo
	}
	if upd.AssignedWorker != nil {
		issue.AssignedWorker = *upd.AssignedWorker
	}
	if upd.PriorityScore != nil {
		issue.PriorityScore = *upd.PriorityScore
		issue.Priority = engine.PriorityFromScore(issue.PriorityScore)
		issue.Deadline = engine.Deadline(issue.CreatedAt, issue.PriorityScore)
	}
	issue.UpdatedAt = now
	issue.Revision++

	if historyNote != "" {
		history := make([]models.HistoryEntry, 0, len(issue.History)+1)
		history = append(history, models.HistoryEntry{
			Status:    issue.Status,
			Timestamp: now,
			Note:      historyNote,
		})
		history = append(history, issue.History...)
		issue.History = history
	}

	updated := make([]models.Issue, len(s.issues))
	copy(updated, s.issues)
	updated[idx] = issue

	if err := s.backend.SaveIssues(ctx, updated); err != nil {
		return models.Issue{}, fmt.Errorf("save issues: %w", err)
	}
	s.issues = updated
	return issue, nil
}
