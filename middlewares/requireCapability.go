package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicconnect-be/models"
)

// RequireCapability gates a route on the capability table: the role claim
// from the session token must be allowed the operation. This is the single
// place role-based access is decided; handlers never inspect roles.
func RequireCapability(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No role in session"})
			c.Abort()
			return
		}

		roleStr, _ := roleVal.(string)
		role, err := models.ParseRole(roleStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown role"})
			c.Abort()
			return
		}

		if !role.Can(capability) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Operation not allowed for this role"})
			c.Abort()
			return
		}

		c.Next()
	}
}
