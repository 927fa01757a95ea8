package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
)

// viewerIsPremium resolves the requesting user's tier. Anonymous viewers
// are treated as free.
func viewerIsPremium(c *gin.Context) bool {
	userID, ok := currentUserID(c)
	if !ok {
		return false
	}
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return false
	}
	return user.IsPremium() || user.Role == models.RoleAdmin
}

// GetSchoolReviews GET /schools/:id/reviews
// Premium-only reviews are hidden from free and anonymous viewers.
func GetSchoolReviews(c *gin.Context) {
	schoolID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid school ID"})
		return
	}

	query := database.DB.Where("school_id = ? AND is_public = ?", schoolID, true)
	if !viewerIsPremium(c) {
		query = query.Where("is_premium_only = ?", false)
	}

	var reviews []models.Review
	if err := query.Order("created_at desc").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	var avg float64
	database.DB.Model(&models.Review{}).
		Where("school_id = ? AND is_public = ?", schoolID, true).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg)

	c.JSON(http.StatusOK, gin.H{
		"reviews":       reviews,
		"averageRating": avg,
	})
}

// GetSchoolRating GET /schools/:id/rating
func GetSchoolRating(c *gin.Context) {
	schoolID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid school ID"})
		return
	}

	var school models.School
	if err := database.DB.Select("id").First(&school, "id = ?", schoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}

	var avg float64
	var count int64
	database.DB.Model(&models.Review{}).
		Where("school_id = ? AND is_public = ?", schoolID, true).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg)
	database.DB.Model(&models.Review{}).
		Where("school_id = ? AND is_public = ?", schoolID, true).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{
		"averageRating": avg,
		"reviewCount":   count,
	})
}

// GetMyReviews GET /reviews/mine
func GetMyReviews(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var reviews []models.Review
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

type ReviewInput struct {
	SchoolID uint   `json:"schoolId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Title    string `json:"title"`
	Content  string `json:"content" binding:"required"`
	IsPublic *bool  `json:"isPublic"`
}

// CreateReview POST /reviews
func CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var school models.School
	if err := database.DB.Select("id").First(&school, "id = ?", input.SchoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}

	// One review per user per school
	var existing models.Review
	if err := database.DB.Where("school_id = ? AND user_id = ?", input.SchoolID, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this school"})
		return
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	review := models.Review{
		SchoolID: input.SchoolID,
		UserID:   userID,
		Rating:   input.Rating,
		Title:    input.Title,
		Content:  input.Content,
		IsPublic: isPublic,
	}

	if err := database.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// DeleteReview DELETE /reviews/:id
// Owners can delete their own review, admins any review.
func DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var review models.Review
	if err := database.DB.First(&review, "id = ?", reviewID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if review.UserID != userID {
		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil || user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
	}

	database.DB.Delete(&review)
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
