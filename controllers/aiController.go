package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"civicconnect-be/apperrors"
)

// CategorizeImage asks the model which category an uploaded photo shows. Any
// failure here is non-fatal to submission: the client re-prompts the user to
// pick a category instead.
func CategorizeImage(c *gin.Context) {
	var input struct {
		ImageData string `json:"imageData" binding:"required"`
		MimeType  string `json:"mimeType" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := gemini.CategorizeImage(c.Request.Context(), input.ImageData, input.MimeType)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAnalysisTimeout):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnrecognizedImage):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": apperrors.ErrAnalysisUnavailable.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// SummarizeDescription turns a free-text description into a one-line title.
// On failure the client falls back to manual title entry.
func SummarizeDescription(c *gin.Context) {
	var input struct {
		Description string `json:"description" binding:"required,max=1000"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := gemini.GenerateSummary(c.Request.Context(), input.Description)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": apperrors.ErrAnalysisUnavailable.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"title": summary})
}
