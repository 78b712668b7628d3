package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicconnect-be/models"
)

// DeputyEscalations lists unresolved issues stalled between 2 and 5 days —
// the Deputy Commissioner's attention tier.
func DeputyEscalations(c *gin.Context) {
	issues := lifecycle.Escalated(models.RoleDeputyCommissioner)
	c.JSON(http.StatusOK, gin.H{
		"issues": issues,
		"count":  len(issues),
	})
}

// CommissionerEscalations lists unresolved issues stalled 5 days or more —
// the Municipal Commissioner's attention tier.
func CommissionerEscalations(c *gin.Context) {
	issues := lifecycle.Escalated(models.RoleMunicipalCommissioner)
	c.JSON(http.StatusOK, gin.H{
		"issues": issues,
		"count":  len(issues),
	})
}
