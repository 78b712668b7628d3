package routes

import (
	"civicconnect-be/controllers"
	"civicconnect-be/middlewares"
	"civicconnect-be/models"

	"github.com/gin-gonic/gin"
)

// EscalationRoutes sets up the supervisory escalation views
func EscalationRoutes(r *gin.Engine) {
	escalation := r.Group("/api/escalation",
		middlewares.AuthMiddleware(),
		middlewares.RequireCapability(models.CapViewEscalations))
	{
		escalation.GET("/deputy-commissioner", controllers.DeputyEscalations)
		escalation.GET("/municipal-commissioner", controllers.CommissionerEscalations)
	}
}
