package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/services"
	"github.com/Annsgit/melbourneedu-backend/pkg/logger"
)

const maxQueryLength = 500

type ChatQueryInput struct {
	Query     string `json:"query" binding:"required"`
	SchoolIDs []uint `json:"schoolIds"`
}

// SchoolBotQuery POST /chat/query
// Free-text question about Melbourne schools, answered by the model when
// configured or by the rule-based responder otherwise.
func SchoolBotQuery(c *gin.Context) {
	var input ChatQueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query must not be empty"})
		return
	}
	if len(query) > maxQueryLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query too long"})
		return
	}

	answer, err := services.ProcessSchoolBotQuery(c.Request.Context(), query, input.SchoolIDs)
	if err != nil {
		logger.Error().Err(err).Msg("SchoolBot query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sorry, I'm having trouble connecting to my knowledge base right now. Please try again later."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": answer})
}
