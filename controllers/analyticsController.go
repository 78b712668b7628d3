package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"civicconnect-be/models"
)

// GetIssueAnalytics returns analytical data about issues for the official
// dashboards: category breakdown, a last-7-days series, the highest-priority
// open issues and overall counts.
func GetIssueAnalytics(c *gin.Context) {
	issues := issueStore.List()

	categoryCounts := make(map[models.IssueCategory]int)
	openIssues := 0
	resolvedIssues := 0
	for _, issue := range issues {
		categoryCounts[issue.Category]++
		if issue.Status == models.Resolved {
			resolvedIssues++
		} else {
			openIssues++
		}
	}

	issuesByCategory := make([]gin.H, 0, len(categoryCounts))
	for _, category := range models.Categories {
		if count, ok := categoryCounts[category]; ok {
			issuesByCategory = append(issuesByCategory, gin.H{
				"name":  category,
				"value": count,
			})
		}
	}

	var last7Days []gin.H
	now := time.Now()
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		nextDate := date.AddDate(0, 0, 1)

		count := 0
		for _, issue := range issues {
			if !issue.CreatedAt.Before(date) && issue.CreatedAt.Before(nextDate) {
				count++
			}
		}

		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	// Highest-scored unresolved issues, the analogue of a top-voted list:
	// every distinct reporter of the same problem raised its score by one.
	open := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Status != models.Resolved {
			open = append(open, issue)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].PriorityScore > open[j].PriorityScore
	})
	if len(open) > 5 {
		open = open[:5]
	}

	type topIssue struct {
		ID            string               `json:"id"`
		Title         string               `json:"title"`
		Category      models.IssueCategory `json:"category"`
		Priority      models.IssuePriority `json:"priority"`
		PriorityScore int                  `json:"priorityScore"`
		Deadline      time.Time            `json:"deadline"`
	}
	topIssues := make([]topIssue, 0, len(open))
	for _, issue := range open {
		topIssues = append(topIssues, topIssue{
			ID:            issue.ID,
			Title:         issue.Title,
			Category:      issue.Category,
			Priority:      issue.Priority,
			PriorityScore: issue.PriorityScore,
			Deadline:      issue.Deadline,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"issuesByCategory": issuesByCategory,
		"last7Days":        last7Days,
		"topIssues":        topIssues,
		"totalIssues":      len(issues),
		"openIssues":       openIssues,
		"resolvedIssues":   resolvedIssues,
	})
}

// GetLeaderboard returns citizens ranked by reward points.
func GetLeaderboard(c *gin.Context) {
	citizens := citizenStore.List()
	sort.SliceStable(citizens, func(i, j int) bool {
		return citizens[i].Points > citizens[j].Points
	})

	type entry struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Points int    `json:"points"`
	}
	leaderboard := make([]entry, 0, len(citizens))
	for _, citizen := range citizens {
		leaderboard = append(leaderboard, entry{
			ID:     citizen.ID,
			Name:   citizen.Name,
			Points: citizen.Points,
		})
	}

	c.JSON(http.StatusOK, leaderboard)
}
