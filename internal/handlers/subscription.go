package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
	"github.com/Annsgit/melbourneedu-backend/internal/services"
	"github.com/Annsgit/melbourneedu-backend/pkg/logger"
)

type SubscribeInput struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// Subscribe POST /subscriptions
// Newsletter signup with double opt-in: the address only becomes active
// once the emailed confirmation link is followed.
func Subscribe(c *gin.Context) {
	var input SubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Subscription
	if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		if existing.IsConfirmed {
			c.JSON(http.StatusConflict, gin.H{"error": "This email is already subscribed"})
			return
		}
		// Re-send the confirmation for a pending signup
		if existing.ConfirmationToken != nil {
			services.SendConfirmationEmail(existing.Email, existing.Name, *existing.ConfirmationToken)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Confirmation email re-sent. Please check your inbox."})
		return
	}

	token := uuid.New().String()
	subscription := models.Subscription{
		Email:             input.Email,
		Name:              input.Name,
		ConfirmationToken: &token,
	}

	if err := database.DB.Create(&subscription).Error; err != nil {
		logger.Error().Err(err).Str("email", input.Email).Msg("Failed to create subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	if !services.SendConfirmationEmail(subscription.Email, subscription.Name, token) {
		logger.Warn().Str("email", input.Email).Msg("Confirmation email not sent")
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed. Please check your inbox to confirm."})
}

// ConfirmSubscription GET /subscriptions/confirm/:token
func ConfirmSubscription(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Confirmation token required"})
		return
	}

	var subscription models.Subscription
	if err := database.DB.Where("confirmation_token = ?", token).First(&subscription).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or expired confirmation token"})
		return
	}

	subscription.IsConfirmed = true
	subscription.ConfirmationToken = nil
	if err := database.DB.Save(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription confirmed. Welcome aboard!"})
}

// Unsubscribe DELETE /subscriptions
func Unsubscribe(c *gin.Context) {
	var input SubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := database.DB.Where("email = ?", input.Email).Delete(&models.Subscription{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}

// --- Per-school notification preferences ---

type PreferenceInput struct {
	SchoolID      uint  `json:"schoolId" binding:"required"`
	NotifyEvents  *bool `json:"notifyEvents"`
	NotifyReviews *bool `json:"notifyReviews"`
}

// SetNotificationPreference PUT /preferences
// Upserts the caller's opt-in for a school.
func SetNotificationPreference(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input PreferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var school models.School
	if err := database.DB.Select("id").First(&school, "id = ?", input.SchoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}

	var pref models.NotificationPreference
	err := database.DB.Where("user_id = ? AND school_id = ?", userID, input.SchoolID).First(&pref).Error
	if err != nil {
		pref = models.NotificationPreference{
			UserID:       userID,
			SchoolID:     input.SchoolID,
			NotifyEvents: true,
		}
	}

	if input.NotifyEvents != nil {
		pref.NotifyEvents = *input.NotifyEvents
	}
	if input.NotifyReviews != nil {
		pref.NotifyReviews = *input.NotifyReviews
	}

	if err := database.DB.Save(&pref).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preference"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preference": pref})
}

// GetNotificationPreferences GET /preferences
func GetNotificationPreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var prefs []models.NotificationPreference
	if err := database.DB.Where("user_id = ?", userID).Find(&prefs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// --- Web push registrations ---

type PushSubscriptionInput struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

// RegisterPushSubscription POST /push-subscriptions
func RegisterPushSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input PushSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.PushSubscription
	if err := database.DB.Where("user_id = ? AND endpoint = ?", userID, input.Endpoint).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"subscription": existing})
		return
	}

	sub := models.PushSubscription{
		UserID:   userID,
		Endpoint: input.Endpoint,
		P256dh:   input.P256dh,
		Auth:     input.Auth,
	}

	if err := database.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register push subscription"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subscription": sub})
}
