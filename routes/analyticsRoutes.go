package routes

import (
	"civicconnect-be/controllers"
	"civicconnect-be/middlewares"
	"civicconnect-be/models"

	"github.com/gin-gonic/gin"
)

// AnalyticsRoutes sets up the dashboard analytics and leaderboard routes
func AnalyticsRoutes(r *gin.Engine) {
	r.GET("/api/analytics",
		middlewares.AuthMiddleware(),
		middlewares.RequireCapability(models.CapViewAnalytics),
		controllers.GetIssueAnalytics)

	r.GET("/api/leaderboard", controllers.GetLeaderboard)
}
