package controllers

import (
	"errors"
	"net/http"
	"os"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"civicconnect-be/apperrors"
	"civicconnect-be/models"
	authUtils "civicconnect-be/utils"
)

func setAuthCookie(c *gin.Context, token string) {
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	// For production, don't set domain to allow cross-origin cookies
	if environment == "production" {
		domain = ""
	}

	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		MaxAge:   3600,
		Path:     "/",
		Domain:   domain,
		Secure:   environment == "production",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	}
	http.SetCookie(c.Writer, cookie)
}

// RegisterCitizen handles citizen account registration.
func RegisterCitizen(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := citizenStore.FindByEmail(input.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Citizen with this email already exists"})
		return
	}

	citizen := models.Citizen{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	}
	if err := citizen.HashPassword(); err != nil {
		log.WithError(err).Error("error hashing password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	created, err := citizenStore.Register(c.Request.Context(), citizen)
	if err != nil {
		log.WithError(err).Error("error registering citizen")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":        created.ID,
		"name":      created.Name,
		"email":     created.Email,
		"createdAt": created.CreatedAt,
	})
}

// LoginCitizen handles citizen email/password login.
func LoginCitizen(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	citizen, err := citizenStore.FindByEmail(input.Email)
	if err != nil || !citizen.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := authUtils.GenerateToken(citizen.ID, citizen.Name, models.RoleCitizen)
	if err != nil {
		log.WithError(err).Error("error generating token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	setAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"id":     citizen.ID,
		"name":   citizen.Name,
		"email":  citizen.Email,
		"points": citizen.Points,
		"role":   models.RoleCitizen,
		"token":  token,
	})
}

// LoginRole signs a user in by role alone. The role string is client-chosen
// and trusted as-is; what each role may do is still decided by the capability
// table. Citizens get the demo account (or a specific one by id), workers
// pick a crew name.
func LoginRole(c *gin.Context) {
	var input struct {
		Role      string `json:"role" binding:"required"`
		CitizenID string `json:"citizenId,omitempty"`
		Worker    string `json:"worker,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	userID := string(role)
	name := string(role)

	switch role {
	case models.RoleCitizen:
		citizenID := input.CitizenID
		if citizenID == "" {
			citizenID = "citizen-1"
		}
		citizen, err := citizenStore.Get(citizenID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Citizen not found"})
				return
			}
			respondError(c, err)
			return
		}
		userID = citizen.ID
		name = citizen.Name
	case models.RoleWorker:
		worker := input.Worker
		if worker == "" {
			worker = models.Workers[0]
		}
		userID = "worker:" + worker
		name = worker
	}

	token, err := authUtils.GenerateToken(userID, name, role)
	if err != nil {
		log.WithError(err).Error("error generating token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	setAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"id":    userID,
		"name":  name,
		"role":  role,
		"token": token,
	})
}

// GetMe returns the authenticated session's identity.
func GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	name, _ := c.Get("user_name")
	role, _ := c.Get("role")

	response := gin.H{
		"id":   userID,
		"name": name,
		"role": role,
	}

	// Citizens also get their point balance.
	if id, ok := userID.(string); ok {
		if citizen, err := citizenStore.Get(id); err == nil {
			response["points"] = citizen.Points
		}
	}

	c.JSON(http.StatusOK, response)
}

// LogoutUser clears the auth_token cookie.
func LogoutUser(c *gin.Context) {
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	c.SetCookie("auth_token", "", -1, "/", domain, environment == "production", true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
