package store

import (
	"time"

	"civicconnect-be/engine"
	"civicconnect-be/models"
)

func ptr[T any](v T) *T { return &v }

// seedIssues returns the fixed demo records used whenever the backend holds
// no usable data. Timestamps are relative to now so the dashboards (deadline
// countdowns, escalation tiers) have something meaningful to show.
func seedIssues(now time.Time) []models.Issue {
	day := 24 * time.Hour

	oneDayAgo := now.Add(-1 * day)
	fiveDaysAgo := now.Add(-5 * day)
	eightDaysAgo := now.Add(-8 * day)
	nineDaysAgo := now.Add(-9 * day)
	tenDaysAgo := now.Add(-10 * day)

	return []models.Issue{
		{
			ID:            "1",
			Title:         "Large Pothole on Main St",
			Category:      models.Pothole,
			Description:   "There is a large, dangerous pothole in the eastbound lane of Main St, right before the intersection with Oak Ave. It has caused several cars to swerve suddenly.",
			Location:      "Lat: 40.7128, Lon: -74.0060",
			Latitude:      ptr(40.7128),
			Longitude:     ptr(-74.0060),
			LocationHash:  engine.LocationHash(40.7128, -74.0060),
			Priority:      engine.PriorityFromScore(8),
			PriorityScore: 8,
			Status:        models.Submitted,
			ReporterID:    "citizen-1",
			ReporterName:  "Jane Doe",
			AssignedTo:    "Public Works",
			CreatedAt:     oneDayAgo,
			UpdatedAt:     oneDayAgo,
			Deadline:      engine.Deadline(oneDayAgo, 8),
			Notes:         []string{},
			History: []models.HistoryEntry{
				{Status: models.Submitted, Timestamp: oneDayAgo, Note: "Issue submitted by citizen. High priority due to multiple reports."},
			},
			ImageURL: ptr("https://via.placeholder.com/400x300.png?text=Pothole"),
			Revision: 1,
		},
		{
			ID:             "2",
			Title:          "Streetlight out on 5th Ave",
			Category:       models.Streetlight,
			Description:    "The streetlight at the corner of 5th Avenue and Pine Street is completely out. It makes the intersection very dark and unsafe at night.",
			Location:       "Lat: 40.7306, Lon: -73.9352",
			Latitude:       ptr(40.7306),
			Longitude:      ptr(-73.9352),
			LocationHash:   engine.LocationHash(40.7306, -73.9352),
			Priority:       engine.PriorityFromScore(4),
			PriorityScore:  4,
			Status:         models.InProgress,
			ReporterID:     "citizen-2",
			ReporterName:   "John Appleseed",
			AssignedTo:     "Public Works",
			AssignedWorker: "John Smith",
			CreatedAt:      fiveDaysAgo,
			UpdatedAt:      oneDayAgo,
			Deadline:       engine.Deadline(fiveDaysAgo, 4),
			Notes:          []string{"Scheduled for repair on Monday."},
			History: []models.HistoryEntry{
				{Status: models.InProgress, Timestamp: oneDayAgo, Note: "Status changed to In Progress. Assigned to Public Works and worker John Smith."},
				{Status: models.Submitted, Timestamp: fiveDaysAgo, Note: "Issue submitted by citizen."},
			},
			ImageURL: ptr("https://via.placeholder.com/400x300.png?text=Broken+Streetlight"),
			Revision: 2,
		},
		{
			ID:             "3",
			Title:          "Overflowing trash can at City Park",
			Category:       models.Trash,
			Description:    "The main trash can near the playground at City Park is overflowing with garbage. It needs to be emptied as soon as possible.",
			Location:       "Lat: 40.7851, Lon: -73.9683",
			Latitude:       ptr(40.7851),
			Longitude:      ptr(-73.9683),
			LocationHash:   engine.LocationHash(40.7851, -73.9683),
			Priority:       engine.PriorityFromScore(1),
			PriorityScore:  1,
			Status:         models.Resolved,
			ReporterID:     "citizen-3",
			ReporterName:   "Alice Johnson",
			AssignedTo:     "Sanitation",
			AssignedWorker: "Maria Garcia",
			CreatedAt:      tenDaysAgo,
			UpdatedAt:      eightDaysAgo,
			Deadline:       engine.Deadline(tenDaysAgo, 1),
			Notes:          []string{"Sanitation crew emptied the can and cleaned the area."},
			History: []models.HistoryEntry{
				{Status: models.Resolved, Timestamp: eightDaysAgo, Note: "Status changed to Resolved. Trash was collected."},
				{Status: models.InProgress, Timestamp: nineDaysAgo, Note: "Status changed to In Progress. Assigned to Sanitation."},
				{Status: models.Submitted, Timestamp: tenDaysAgo, Note: "Issue submitted by citizen."},
			},
			ImageURL: ptr("https://via.placeholder.com/400x300.png?text=Overflowing+Trash"),
			Revision: 3,
		},
	}
}

// seedCitizens returns the demo reporter accounts.
func seedCitizens(now time.Time) []models.Citizen {
	return []models.Citizen{
		{ID: "citizen-1", Name: "Jane Doe", Points: 50, CreatedAt: now, UpdatedAt: now},
		{ID: "citizen-2", Name: "John Appleseed", Points: 30, CreatedAt: now, UpdatedAt: now},
		{ID: "citizen-3", Name: "Alice Johnson", Points: 70, CreatedAt: now, UpdatedAt: now},
		{ID: "citizen-4", Name: "Bob Williams", Points: 10, CreatedAt: now, UpdatedAt: now},
	}
}
