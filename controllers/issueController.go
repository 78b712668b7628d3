package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang/geo/s2"

	"civicconnect-be/apperrors"
	"civicconnect-be/models"
	"civicconnect-be/services"
	"civicconnect-be/store"
)

const earthRadiusMeters = 6371000.0

// CreateIssue handles a citizen's new-issue submission. The duplicate merge
// rule runs inside the lifecycle service: depending on what it decides this
// either creates a record, bumps an existing one's priority, or rejects a
// same-reporter duplicate.
func CreateIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	userName, _ := c.Get("user_name")
	reporterName, _ := userName.(string)

	var input struct {
		Title       string  `json:"title" binding:"required,max=200"`
		Description string  `json:"description" binding:"required,max=1000"`
		Category    string  `json:"category" binding:"required"`
		Location    string  `json:"location" binding:"required,max=200"`
		ImageURL    *string `json:"imageUrl,omitempty"`
		Latitude    float64 `json:"latitude" binding:"required"`
		Longitude   float64 `json:"longitude" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	result, err := lifecycle.Submit(c.Request.Context(), services.SubmitRequest{
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		Category:     models.IssueCategory(input.Category),
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		ImageURL:     input.ImageURL,
		ReporterID:   userID.(string),
		ReporterName: reporterName,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateReport) {
			// Informational, not a failure: the report exists and its
			// priority may still rise from reports by other citizens.
			c.JSON(http.StatusConflict, gin.H{
				"error":   "duplicate report",
				"message": "You have already reported this issue. Its priority may still increase as other citizens report it.",
			})
			return
		}
		respondError(c, err)
		return
	}

	if result.Merged {
		c.JSON(http.StatusOK, gin.H{
			"message": "This issue was already reported at this location. Its priority has been increased.",
			"issue":   result.Issue,
			"merged":  true,
		})
		return
	}

	c.JSON(http.StatusCreated, result.Issue)
}

// GetIssue retrieves an issue by its ID.
func GetIssue(c *gin.Context) {
	issue, err := issueStore.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// GetAllIssues retrieves issues with filtering, sorting and pagination.
func GetAllIssues(c *gin.Context) {
	category := c.Query("category")
	status := c.Query("status")
	search := strings.ToLower(c.Query("search"))
	sortOrder := c.DefaultQuery("sort", "newest")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	all := issueStore.List()
	filtered := make([]models.Issue, 0, len(all))
	for _, issue := range all {
		if category != "" && category != "all" && string(issue.Category) != category {
			continue
		}
		if status != "" && status != "all" && string(issue.Status) != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(issue.Title), search) &&
			!strings.Contains(strings.ToLower(issue.Description), search) {
			continue
		}
		filtered = append(filtered, issue)
	}

	switch sortOrder {
	case "oldest":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		})
	case "priority":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].PriorityScore > filtered[j].PriorityScore
		})
	default: // newest
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	totalCount := len(filtered)
	totalPages := (totalCount + limit - 1) / limit

	start := (page - 1) * limit
	if start > totalCount {
		start = totalCount
	}
	end := start + limit
	if end > totalCount {
		end = totalCount
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      filtered[start:end],
		"totalIssues": totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetIssuesByUser retrieves all issues reported by the authenticated user.
func GetIssuesByUser(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	mine := make([]models.Issue, 0)
	for _, issue := range issueStore.List() {
		if issue.ReporterID == userID.(string) {
			mine = append(mine, issue)
		}
	}

	c.JSON(http.StatusOK, mine)
}

// UpdateIssue applies a partial update to an issue. The caller supplies the
// history note describing the change; a status transition into Resolved
// triggers the reporter's point award. Sending the revision the client read
// turns on the conflict check.
func UpdateIssue(c *gin.Context) {
	var input struct {
		Title          *string `json:"title,omitempty"`
		Description    *string `json:"description,omitempty"`
		Location       *string `json:"location,omitempty"`
		ImageURL       *string `json:"imageUrl,omitempty"`
		Status         *string `json:"status,omitempty"`
		AssignedTo     *string `json:"assignedTo,omitempty"`
		AssignedWorker *string `json:"assignedWorker,omitempty"`
		HistoryNote    string  `json:"historyNote" binding:"required,max=500"`
		Revision       *int64  `json:"revision,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := store.IssueUpdate{
		Title:          input.Title,
		Description:    input.Description,
		Location:       input.Location,
		ImageURL:       input.ImageURL,
		AssignedTo:     input.AssignedTo,
		AssignedWorker: input.AssignedWorker,
	}

	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		status := models.IssueStatus(*input.Status)
		upd.Status = &status
	}

	rev := int64(-1)
	if input.Revision != nil {
		rev = *input.Revision
	}

	issue, err := lifecycle.Update(c.Request.Context(), c.Param("id"), rev, upd, input.HistoryNote)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// NearbyIssues returns recent geolocated issues within a radius of the given
// point, for the map view.
func NearbyIssues(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters are required"})
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "2000"), 64)
	if err != nil || radius <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius"})
		return
	}

	center := s2.LatLngFromDegrees(lat, lon)
	limit := 19

	type nearbyIssue struct {
		ID             string               `json:"id"`
		Title          string               `json:"title"`
		Latitude       float64              `json:"latitude"`
		Longitude      float64              `json:"longitude"`
		Location       string               `json:"location"`
		Category       models.IssueCategory `json:"category"`
		Status         models.IssueStatus   `json:"status"`
		Priority       models.IssuePriority `json:"priority"`
		DistanceMeters float64              `json:"distanceMeters"`
	}

	nearby := make([]nearbyIssue, 0)
	for _, issue := range issueStore.List() {
		if issue.Latitude == nil || issue.Longitude == nil {
			continue
		}
		point := s2.LatLngFromDegrees(*issue.Latitude, *issue.Longitude)
		distance := center.Distance(point).Radians() * earthRadiusMeters
		if distance > radius {
			continue
		}
		nearby = append(nearby, nearbyIssue{
			ID:             issue.ID,
			Title:          issue.Title,
			Latitude:       *issue.Latitude,
			Longitude:      *issue.Longitude,
			Location:       issue.Location,
			Category:       issue.Category,
			Status:         issue.Status,
			Priority:       issue.Priority,
			DistanceMeters: distance,
		})
		if len(nearby) == limit {
			break
		}
	}

	c.JSON(http.StatusOK, nearby)
}
