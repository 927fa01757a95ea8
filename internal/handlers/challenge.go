package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
	"github.com/Annsgit/melbourneedu-backend/internal/services"
	"github.com/Annsgit/melbourneedu-backend/pkg/errors"
	"github.com/Annsgit/melbourneedu-backend/pkg/logger"
)

// GetChallenges GET /challenges
// Premium-only challenges are hidden from free and anonymous viewers.
// Supports optional ?type= and ?difficulty= filters.
func GetChallenges(c *gin.Context) {
	query := database.DB.Where("is_active = ?", true).Order("points asc")
	if !viewerIsPremium(c) {
		query = query.Where("is_premium_only = ?", false)
	}
	if t := c.Query("type"); t != "" {
		query = query.Where("challenge_type = ?", t)
	}
	if d := c.Query("difficulty"); d != "" {
		query = query.Where("difficulty = ?", d)
	}

	var challenges []models.Challenge
	if err := query.Find(&challenges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenges": challenges})
}

// GetChallenge GET /challenges/:id
func GetChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	if challenge.IsPremiumOnly && !viewerIsPremium(c) {
		c.JSON(errors.ErrPremiumRequired.Code, gin.H{"error": errors.ErrPremiumRequired.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": challenge})
}

// GetMyProgress GET /challenges/progress
func GetMyProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var progress []models.ChallengeProgress
	if err := database.DB.Preload("Challenge").Where("user_id = ?", userID).Order("updated_at desc").Find(&progress).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// CompleteChallenge POST /challenges/:id/complete
// Marks the challenge done for the caller, awarding its points and
// re-evaluating badge eligibility.
func CompleteChallenge(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	challengeID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", challengeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	if !challenge.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Challenge is no longer active"})
		return
	}
	if challenge.IsPremiumOnly && !viewerIsPremium(c) {
		c.JSON(errors.ErrPremiumRequired.Code, gin.H{"error": errors.ErrPremiumRequired.Message})
		return
	}

	progress, err := services.CompleteChallenge(userID, challengeID, challenge.Points)
	if err != nil {
		logger.Error().Err(err).Uint("user_id", userID).Uint("challenge_id", challengeID).Msg("Failed to complete challenge")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete challenge"})
		return
	}

	points, err := services.GetUserPoints(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch points"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"progress":    progress,
		"totalPoints": points,
	})
}

// --- Admin CRUD ---

type ChallengeInput struct {
	Title         string                       `json:"title" binding:"required"`
	Description   string                       `json:"description"`
	ChallengeType models.ChallengeType         `json:"challengeType" binding:"required"`
	Difficulty    models.DifficultyLevel       `json:"difficulty"`
	Points        int                          `json:"points" binding:"required,min=1"`
	Requirements  models.ChallengeRequirements `json:"requirements"`
	IsActive      *bool                        `json:"isActive"`
	IsPremiumOnly bool                         `json:"isPremiumOnly"`
}

// CreateChallenge POST /admin/challenges
func CreateChallenge(c *gin.Context) {
	var input ChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyBeginner
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	challenge := models.Challenge{
		Title:         input.Title,
		Description:   input.Description,
		ChallengeType: input.ChallengeType,
		Difficulty:    difficulty,
		Points:        input.Points,
		Requirements:  input.Requirements,
		IsActive:      isActive,
		IsPremiumOnly: input.IsPremiumOnly,
	}

	if err := database.DB.Create(&challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"challenge": challenge})
}

// UpdateChallenge PUT /admin/challenges/:id
func UpdateChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	var input ChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge.Title = input.Title
	challenge.Description = input.Description
	challenge.ChallengeType = input.ChallengeType
	if input.Difficulty != "" {
		challenge.Difficulty = input.Difficulty
	}
	challenge.Points = input.Points
	challenge.Requirements = input.Requirements
	if input.IsActive != nil {
		challenge.IsActive = *input.IsActive
	}
	challenge.IsPremiumOnly = input.IsPremiumOnly

	if err := database.DB.Save(&challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": challenge})
}

// DeleteChallenge DELETE /admin/challenges/:id
// Deactivates rather than removing, so completion history keeps its rows.
func DeleteChallenge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	result := database.DB.Model(&models.Challenge{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate challenge"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge deactivated"})
}
