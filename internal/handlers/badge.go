package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
	"github.com/Annsgit/melbourneedu-backend/internal/services"
	"github.com/Annsgit/melbourneedu-backend/pkg/logger"
)

// GetBadges GET /badges
// Supports optional ?type= filter over the badge catalog.
func GetBadges(c *gin.Context) {
	query := database.DB.Order("badge_type asc, level asc")
	if t := c.Query("type"); t != "" {
		if !models.IsValidBadgeType(models.BadgeType(t)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown badge type"})
			return
		}
		query = query.Where("badge_type = ?", t)
	}

	var badges []models.Badge
	if err := query.Find(&badges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch badges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// GetBadge GET /badges/:id
func GetBadge(c *gin.Context) {
	badgeID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid badge ID"})
		return
	}

	var badge models.Badge
	if err := database.DB.First(&badge, "id = ?", badgeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Badge not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"badge": badge})
}

// GetMyBadges GET /badges/mine
func GetMyBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var userBadges []models.UserBadge
	if err := database.DB.Preload("Badge").Where("user_id = ?", userID).Order("earned_at desc").Find(&userBadges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch badges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": userBadges})
}

// CheckBadges POST /badges/check
// Re-evaluates the caller against the badge catalog and returns any newly
// awarded badges.
func CheckBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	awarded, err := services.CheckAndAwardBadges(userID)
	if err != nil {
		logger.Error().Err(err).Uint("user_id", userID).Msg("Badge evaluation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check badges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"awarded": awarded})
}

// GetMyPoints GET /points
func GetMyPoints(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	points, err := services.GetUserPoints(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch points"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

// --- Admin ---

type BadgeInput struct {
	Name         string           `json:"name" binding:"required"`
	Description  string           `json:"description"`
	BadgeType    models.BadgeType `json:"badgeType" binding:"required"`
	Level        int              `json:"level"`
	Requirements json.RawMessage  `json:"requirements" binding:"required"`
	ImageURL     string           `json:"imageUrl"`
}

// CreateBadge POST /admin/badges
// Requirements arrive as raw JSON and are validated against the known
// signal vocabulary before the badge is stored.
func CreateBadge(c *gin.Context) {
	var input BadgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsValidBadgeType(input.BadgeType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown badge type"})
		return
	}

	reqs, err := models.ParseBadgeRequirements(input.Requirements)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level := input.Level
	if level == 0 {
		level = 1
	}

	badge := models.Badge{
		Name:         input.Name,
		Description:  input.Description,
		BadgeType:    input.BadgeType,
		Level:        level,
		Requirements: reqs,
		ImageURL:     input.ImageURL,
	}

	if err := database.DB.Create(&badge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create badge"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"badge": badge})
}

// UpdateBadge PUT /admin/badges/:id
func UpdateBadge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid badge ID"})
		return
	}

	var badge models.Badge
	if err := database.DB.First(&badge, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Badge not found"})
		return
	}

	var input BadgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsValidBadgeType(input.BadgeType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown badge type"})
		return
	}

	reqs, err := models.ParseBadgeRequirements(input.Requirements)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	badge.Name = input.Name
	badge.Description = input.Description
	badge.BadgeType = input.BadgeType
	if input.Level > 0 {
		badge.Level = input.Level
	}
	badge.Requirements = reqs
	badge.ImageURL = input.ImageURL

	if err := database.DB.Save(&badge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update badge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"badge": badge})
}

// DeleteBadge DELETE /admin/badges/:id
// Badges already held by users are never revoked, so a definition can
// only be removed while nobody holds it.
func DeleteBadge(c *gin.Context) {
	badgeID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid badge ID"})
		return
	}

	var held int64
	if err := database.DB.Model(&models.UserBadge{}).Where("badge_id = ?", badgeID).Count(&held).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete badge"})
		return
	}
	if held > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Badge has been awarded and cannot be deleted"})
		return
	}

	result := database.DB.Delete(&models.Badge{}, "id = ?", badgeID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete badge"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Badge not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Badge deleted"})
}

// AwardBadge POST /admin/users/:id/badges/:badgeId
// Direct grant outside the evaluation loop, e.g. for promotions.
func AwardBadge(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	badgeID, ok := parseIDParam(c, "badgeId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid badge ID"})
		return
	}

	var user models.User
	if err := database.DB.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	var badge models.Badge
	if err := database.DB.Select("id").First(&badge, "id = ?", badgeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Badge not found"})
		return
	}

	userBadge, err := services.AwardBadgeToUser(userID, badgeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to award badge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userBadge": userBadge})
}

type GrantPointsInput struct {
	Points int `json:"points" binding:"required,min=1"`
}

// GrantPoints POST /admin/users/:id/points
// Sets the user's activity point grant; repeat grants replace, they do
// not accumulate.
func GrantPoints(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input GrantPointsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	total, err := services.AddPointsToUser(userID, input.Points)
	if err != nil {
		logger.Error().Err(err).Uint("user_id", userID).Msg("Failed to grant points")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant points"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalPoints": total})
}
