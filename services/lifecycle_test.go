package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicconnect-be/apperrors"
	"civicconnect-be/models"
	"civicconnect-be/store"
)

func newTestLifecycle(t *testing.T) (*Lifecycle, *store.IssueStore, *store.CitizenStore) {
	t.Helper()
	ctx := context.Background()

	backend := store.NewMemoryBackend()
	require.NoError(t, backend.SaveIssues(ctx, []models.Issue{}))

	issues := store.NewIssueStore(backend)
	require.NoError(t, issues.Load(ctx))

	citizens := store.NewCitizenStore(backend)
	require.NoError(t, citizens.Load(ctx))

	return NewLifecycle(issues, citizens), issues, citizens
}

func potholeSubmission(reporterID, reporterName string) SubmitRequest {
	return SubmitRequest{
		Title:        "Large Pothole on Main St",
		Description:  "Dangerous pothole in the eastbound lane.",
		Location:     "Lat: 40.7128, Lon: -74.0060",
		Category:     models.Pothole,
		Latitude:     40.7128,
		Longitude:    -74.0060,
		ReporterID:   reporterID,
		ReporterName: reporterName,
	}
}

func TestLifecycle_SubmitNewIssue(t *testing.T) {
	lc, issues, _ := newTestLifecycle(t)

	result, err := lc.Submit(context.Background(), potholeSubmission("citizen-1", "Jane Doe"))
	require.NoError(t, err)
	assert.False(t, result.Merged)

	issue := result.Issue
	assert.Equal(t, 1, issue.PriorityScore)
	assert.Equal(t, models.Low, issue.Priority)
	assert.Equal(t, models.Submitted, issue.Status)
	assert.Equal(t, issue.CreatedAt.AddDate(0, 0, 14), issue.Deadline)
	assert.Equal(t, "Public Works", issue.AssignedTo)
	assert.Equal(t, "loc-40.7128--74.0060", issue.LocationHash)
	assert.Equal(t, "citizen-1", issue.ReporterID)
	require.Len(t, issue.History, 1)

	assert.Len(t, issues.List(), 1)
}

func TestLifecycle_SubmitWithoutIdentity(t *testing.T) {
	lc, issues, _ := newTestLifecycle(t)

	req := potholeSubmission("", "")
	_, err := lc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrNotLoggedIn)
	assert.Empty(t, issues.List())
}

func TestLifecycle_SameReporterDuplicateRejected(t *testing.T) {
	lc, issues, _ := newTestLifecycle(t)
	ctx := context.Background()

	first, err := lc.Submit(ctx, potholeSubmission("citizen-1", "Jane Doe"))
	require.NoError(t, err)

	// Same citizen, nearby coordinates inside the same hash bucket.
	dup := potholeSubmission("citizen-1", "Jane Doe")
	dup.Latitude = 40.71283
	dup.Longitude = -74.00604
	_, err = lc.Submit(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReport)

	// No mutation: one record, score untouched.
	require.Len(t, issues.List(), 1)
	unchanged, err := issues.Get(first.Issue.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unchanged.PriorityScore)
	assert.Len(t, unchanged.History, 1)
}

func TestLifecycle_CrossReporterDuplicateMerges(t *testing.T) {
	lc, issues, _ := newTestLifecycle(t)
	ctx := context.Background()

	first, err := lc.Submit(ctx, potholeSubmission("citizen-1", "Jane Doe"))
	require.NoError(t, err)

	second := potholeSubmission("citizen-2", "John Appleseed")
	second.Latitude = 40.71283
	second.Longitude = -74.00604
	result, err := lc.Submit(ctx, second)
	require.NoError(t, err)
	assert.True(t, result.Merged)

	// Absorbed into the first record: no second issue.
	require.Len(t, issues.List(), 1)

	merged := result.Issue
	assert.Equal(t, first.Issue.ID, merged.ID)
	assert.Equal(t, 2, merged.PriorityScore)
	assert.Equal(t, models.Low, merged.Priority)
	assert.Equal(t, first.Issue.CreatedAt.AddDate(0, 0, 14), merged.Deadline)
	// The original reporter keeps the issue even though another citizen
	// raised its score.
	assert.Equal(t, "citizen-1", merged.ReporterID)

	require.Len(t, merged.History, 2)
	assert.Equal(t, "Priority increased to 2 due to a report from another citizen.", merged.History[0].Note)
}

func TestLifecycle_ScoreCrossesTierBoundary(t *testing.T) {
	lc, _, _ := newTestLifecycle(t)
	ctx := context.Background()

	_, err := lc.Submit(ctx, potholeSubmission("citizen-1", "Jane Doe"))
	require.NoError(t, err)

	var last SubmitResult
	reporters := []string{"citizen-2", "citizen-3", "citizen-4"}
	for _, reporter := range reporters {
		last, err = lc.Submit(ctx, potholeSubmission(reporter, reporter))
		require.NoError(t, err)
	}

	// Four distinct reporters: score 4, Medium tier, 7-day offset from the
	// original creation time.
	assert.Equal(t, 4, last.Issue.PriorityScore)
	assert.Equal(t, models.Medium, last.Issue.Priority)
	assert.Equal(t, last.Issue.CreatedAt.AddDate(0, 0, 7), last.Issue.Deadline)
}

func TestLifecycle_ResolutionAwardsPointsOnce(t *testing.T) {
	lc, _, citizens := newTestLifecycle(t)
	ctx := context.Background()

	result, err := lc.Submit(ctx, potholeSubmission("citizen-1", "Jane Doe"))
	require.NoError(t, err)
	id := result.Issue.ID

	before, err := citizens.Get("citizen-1")
	require.NoError(t, err)

	inProgress := models.InProgress
	_, err = lc.Update(ctx, id, -1, store.IssueUpdate{Status: &inProgress}, "Crew dispatched.")
	require.NoError(t, err)

	resolved := models.Resolved
	_, err = lc.Update(ctx, id, -1, store.IssueUpdate{Status: &resolved}, "Pothole filled.")
	require.NoError(t, err)

	after, err := citizens.Get("citizen-1")
	require.NoError(t, err)
	assert.Equal(t, before.Points+10, after.Points)

	// A no-op re-resolve must not pay again.
	_, err = lc.Update(ctx, id, -1, store.IssueUpdate{Status: &resolved}, "Verified.")
	require.NoError(t, err)

	final, err := citizens.Get("citizen-1")
	require.NoError(t, err)
	assert.Equal(t, after.Points, final.Points)
}

func TestLifecycle_UpdateUnknownIssue(t *testing.T) {
	lc, _, _ := newTestLifecycle(t)

	resolved := models.Resolved
	_, err := lc.Update(context.Background(), "no-such-id", -1, store.IssueUpdate{Status: &resolved}, "note")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLifecycle_NewReportAfterResolutionStartsFresh(t *testing.T) {
	lc, issues, _ := newTestLifecycle(t)
	ctx := context.Background()

	first, err := lc.Submit(ctx, potholeSubmission("citizen-1", "Jane Doe"))
	require.NoError(t, err)

	resolved := models.Resolved
	_, err = lc.Update(ctx, first.Issue.ID, -1, store.IssueUpdate{Status: &resolved}, "Fixed.")
	require.NoError(t, err)

	// The same citizen reporting the same spot again is now a new record,
	// not a duplicate: the old issue is resolved.
	result, err := lc.Submit(ctx, potholeSubmission("citizen-1", "Jane Doe"))
	require.NoError(t, err)
	assert.False(t, result.Merged)
	assert.NotEqual(t, first.Issue.ID, result.Issue.ID)
	assert.Len(t, issues.List(), 2)
}

func TestLifecycle_EscalatedViews(t *testing.T) {
	lc, issues, _ := newTestLifecycle(t)
	ctx := context.Background()

	// Fresh submissions have just been touched and escalate nowhere.
	_, err := lc.Submit(ctx, potholeSubmission("citizen-1", "Jane Doe"))
	require.NoError(t, err)

	assert.Empty(t, lc.Escalated(models.RoleDeputyCommissioner))
	assert.Empty(t, lc.Escalated(models.RoleMunicipalCommissioner))
	assert.Len(t, issues.List(), 1)
}
