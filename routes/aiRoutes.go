package routes

import (
	"civicconnect-be/controllers"
	"civicconnect-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AIRoutes sets up the image-categorization and summarization helpers used
// by the report form
func AIRoutes(r *gin.Engine) {
	ai := r.Group("/api/ai", middlewares.AuthMiddleware())
	{
		ai.POST("/categorize", controllers.CategorizeImage)
		ai.POST("/summarize", controllers.SummarizeDescription)
	}
}
