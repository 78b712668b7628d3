package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"civicconnect-be/apperrors"
	"civicconnect-be/services"
	"civicconnect-be/store"
)

var (
	issueStore   *store.IssueStore
	citizenStore *store.CitizenStore
	lifecycle    *services.Lifecycle
	gemini       *services.Gemini
)

// Setup wires the handlers to their stores and services. Called once from
// main before routes are registered.
func Setup(issues *store.IssueStore, citizens *store.CitizenStore, lc *services.Lifecycle, ai *services.Gemini) {
	issueStore = issues
	citizenStore = citizens
	lifecycle = lc
	gemini = ai
}

// respondError maps core error kinds onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
