package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"civicconnect-be/models"
)

func TestPriorityFromScore(t *testing.T) {
	testCases := []struct {
		score    int
		expected models.IssuePriority
	}{
		{score: -1, expected: models.Low},
		{score: 0, expected: models.Low},
		{score: 1, expected: models.Low},
		{score: 3, expected: models.Low},
		{score: 4, expected: models.Medium},
		{score: 6, expected: models.Medium},
		{score: 7, expected: models.High},
		{score: 8, expected: models.High},
		{score: 100, expected: models.High},
	}

	for _, tc := range testCases {
		assert.Equalf(t, tc.expected, PriorityFromScore(tc.score), "score %d", tc.score)
	}
}

func TestDeadlineDays(t *testing.T) {
	testCases := []struct {
		score    int
		expected int
	}{
		{score: 0, expected: 14},
		{score: 1, expected: 14},
		{score: 3, expected: 14},
		{score: 4, expected: 7},
		{score: 6, expected: 7},
		{score: 7, expected: 3},
		{score: 12, expected: 3},
	}

	for _, tc := range testCases {
		assert.Equalf(t, tc.expected, DeadlineDays(tc.score), "score %d", tc.score)
	}
}

func TestDeadlineDays_MatchesTierBands(t *testing.T) {
	// The offset must track the tier exactly, whatever the score.
	for score := -2; score <= 20; score++ {
		days := DeadlineDays(score)
		switch PriorityFromScore(score) {
		case models.High:
			assert.Equal(t, 3, days)
		case models.Medium:
			assert.Equal(t, 7, days)
		case models.Low:
			assert.Equal(t, 14, days)
		}
	}
}

func TestDeadline_CalendarDayAddition(t *testing.T) {
	createdAt := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, createdAt.AddDate(0, 0, 14), Deadline(createdAt, 1))
	assert.Equal(t, createdAt.AddDate(0, 0, 7), Deadline(createdAt, 5))
	assert.Equal(t, createdAt.AddDate(0, 0, 3), Deadline(createdAt, 9))

	// Calendar addition carries over month boundaries.
	endOfMonth := time.Date(2025, time.January, 25, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.February, 8, 8, 0, 0, 0, time.UTC), Deadline(endOfMonth, 1))
}
