package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicconnect-be/apperrors"
	"civicconnect-be/engine"
	"civicconnect-be/models"
)

func newTestIssueStore(t *testing.T) *IssueStore {
	t.Helper()
	backend := NewMemoryBackend()
	// An explicitly saved empty collection keeps Load from seeding demo data.
	require.NoError(t, backend.SaveIssues(context.Background(), []models.Issue{}))

	s := NewIssueStore(backend)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func newPotholeReport(reporterID string) models.Issue {
	lat, lon := 40.7128, -74.0060
	return models.Issue{
		Title:         "Large Pothole on Main St",
		Description:   "Dangerous pothole in the eastbound lane.",
		Category:      models.Pothole,
		Location:      "Lat: 40.7128, Lon: -74.0060",
		Latitude:      &lat,
		Longitude:     &lon,
		LocationHash:  engine.LocationHash(lat, lon),
		PriorityScore: 1,
		ReporterID:    reporterID,
		ReporterName:  "Jane Doe",
		AssignedTo:    "Public Works",
	}
}

func TestIssueStore_LoadSeedsWhenEmpty(t *testing.T) {
	s := NewIssueStore(NewMemoryBackend())
	require.NoError(t, s.Load(context.Background()))

	issues := s.List()
	require.Len(t, issues, 3)
	for _, issue := range issues {
		assert.Equal(t, engine.PriorityFromScore(issue.PriorityScore), issue.Priority)
		assert.Equal(t, engine.Deadline(issue.CreatedAt, issue.PriorityScore), issue.Deadline)
		assert.NotEmpty(t, issue.History)
	}
}

func TestIssueStore_CreateDefaults(t *testing.T) {
	s := newTestIssueStore(t)

	created, err := s.Create(context.Background(), newPotholeReport("citizen-1"))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.Submitted, created.Status)
	assert.Equal(t, 1, created.PriorityScore)
	assert.Equal(t, models.Low, created.Priority)
	assert.Equal(t, created.CreatedAt.AddDate(0, 0, 14), created.Deadline)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, int64(1), created.Revision)

	require.Len(t, created.History, 1)
	assert.Equal(t, models.Submitted, created.History[0].Status)
	assert.Equal(t, "Issue submitted by citizen. Automatically assigned to Public Works.", created.History[0].Note)
}

func TestIssueStore_RoundTrip(t *testing.T) {
	s := newTestIssueStore(t)

	created, err := s.Create(context.Background(), newPotholeReport("citizen-1"))
	require.NoError(t, err)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	// Reads are idempotent: no intervening update, identical records.
	again, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestIssueStore_GetUnknown(t *testing.T) {
	s := newTestIssueStore(t)

	_, err := s.Get("no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIssueStore_UpdateAppendsHistory(t *testing.T) {
	s := newTestIssueStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, newPotholeReport("citizen-1"))
	require.NoError(t, err)

	status := models.InProgress
	worker := "John Smith"
	updated, err := s.Update(ctx, created.ID, -1, IssueUpdate{
		Status:         &status,
		AssignedWorker: &worker,
	}, "Status changed to In Progress. Assigned to worker John Smith.")
	require.NoError(t, err)

	assert.Equal(t, models.InProgress, updated.Status)
	assert.Equal(t, "John Smith", updated.AssignedWorker)
	assert.Equal(t, int64(2), updated.Revision)
	assert.True(t, updated.UpdatedAt.After(created.CreatedAt) || updated.UpdatedAt.Equal(created.CreatedAt))

	// Newest first, post-merge status on the new entry.
	require.Len(t, updated.History, 2)
	assert.Equal(t, models.InProgress, updated.History[0].Status)
	assert.Equal(t, "Status changed to In Progress. Assigned to worker John Smith.", updated.History[0].Note)
	assert.Equal(t, created.History[0], updated.History[1])
}

func TestIssueStore_UpdateWithoutNoteSkipsHistory(t *testing.T) {
	s := newTestIssueStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, newPotholeReport("citizen-1"))
	require.NoError(t, err)

	title := "Pothole near Oak Ave"
	updated, err := s.Update(ctx, created.ID, -1, IssueUpdate{Title: &title}, "")
	require.NoError(t, err)

	assert.Equal(t, "Pothole near Oak Ave", updated.Title)
	assert.Len(t, updated.History, 1)
}

func TestIssueStore_UpdateRecomputesPriorityAndDeadline(t *testing.T) {
	s := newTestIssueStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, newPotholeReport("citizen-1"))
	require.NoError(t, err)

	score := 7
	updated, err := s.Update(ctx, created.ID, -1, IssueUpdate{PriorityScore: &score}, "Priority raised.")
	require.NoError(t, err)

	assert.Equal(t, 7, updated.PriorityScore)
	assert.Equal(t, models.High, updated.Priority)
	// Deadline is always anchored to creation time, not the update time.
	assert.Equal(t, created.CreatedAt.AddDate(0, 0, 3), updated.Deadline)
}

func TestIssueStore_UpdateRevisionConflict(t *testing.T) {
	s := newTestIssueStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, newPotholeReport("citizen-1"))
	require.NoError(t, err)

	status := models.InProgress
	_, err = s.Update(ctx, created.ID, created.Revision, IssueUpdate{Status: &status}, "Started work.")
	require.NoError(t, err)

	// A second writer holding the stale revision is refused.
	resolved := models.Resolved
	_, err = s.Update(ctx, created.ID, created.Revision, IssueUpdate{Status: &resolved}, "Done.")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestIssueStore_UpdateUnknown(t *testing.T) {
	s := newTestIssueStore(t)

	status := models.Resolved
	_, err := s.Update(context.Background(), "no-such-id", -1, IssueUpdate{Status: &status}, "note")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIssueStore_FindActive(t *testing.T) {
	s := newTestIssueStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, newPotholeReport("citizen-1"))
	require.NoError(t, err)

	found, ok := s.FindActive(created.LocationHash)
	require.True(t, ok)
	assert.Equal(t, created.ID, found.ID)

	// A resolved issue no longer counts as active at its location.
	resolved := models.Resolved
	_, err = s.Update(ctx, created.ID, -1, IssueUpdate{Status: &resolved}, "Fixed.")
	require.NoError(t, err)

	_, ok = s.FindActive(created.LocationHash)
	assert.False(t, ok)
}

func TestIssueStore_CorruptBackendDataReseeds(t *testing.T) {
	// The redis backend reports unparseable data as absent; the store then
	// seeds. The memory backend models the "no data" half of that contract.
	s := NewIssueStore(NewMemoryBackend())
	require.NoError(t, s.Load(context.Background()))
	assert.NotEmpty(t, s.List())
}

func TestIssueStore_ListReturnsCopy(t *testing.T) {
	s := newTestIssueStore(t)

	_, err := s.Create(context.Background(), newPotholeReport("citizen-1"))
	require.NoError(t, err)

	list := s.List()
	list[0].Title = "mutated"

	fresh := s.List()
	assert.NotEqual(t, "mutated", fresh[0].Title)
}

func TestIssueStore_CreatePersistsThroughBackend(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, backend.SaveIssues(ctx, []models.Issue{}))

	s := NewIssueStore(backend)
	require.NoError(t, s.Load(ctx))

	created, err := s.Create(ctx, newPotholeReport("citizen-1"))
	require.NoError(t, err)

	// A second store over the same backend sees the record.
	s2 := NewIssueStore(backend)
	require.NoError(t, s2.Load(ctx))
	got, err := s2.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
}

func TestIssueStore_SeedTimesRelativeToNow(t *testing.T) {
	s := NewIssueStore(NewMemoryBackend())
	s.now = func() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, s.Load(context.Background()))

	for _, issue := range s.List() {
		assert.True(t, issue.CreatedAt.Before(time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)))
	}
}
