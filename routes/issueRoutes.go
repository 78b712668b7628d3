package routes

import (
	"civicconnect-be/controllers"
	"civicconnect-be/middlewares"
	"civicconnect-be/models"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue", middlewares.AuthMiddleware())
	{
		issue.POST("/create",
			middlewares.RequireCapability(models.CapSubmitIssue),
			middlewares.IssueRateLimiter(5),
			controllers.CreateIssue)
		issue.GET("", controllers.GetAllIssues)
		issue.GET("/mine", controllers.GetIssuesByUser)
		issue.GET("/nearby", controllers.NearbyIssues)
		issue.GET("/:id", controllers.GetIssue)
		issue.PUT("/:id",
			middlewares.RequireCapability(models.CapUpdateStatus),
			controllers.UpdateIssue)
	}
}
