package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
)

// GetEvents GET /events
// Lists public events, optionally filtered by ?school_id=.
func GetEvents(c *gin.Context) {
	query := database.DB.Where("is_public = ?", true).Order("start_date asc").Limit(100)
	if !viewerIsPremium(c) {
		query = query.Where("is_premium_only = ?", false)
	}
	if raw := c.Query("school_id"); raw != "" {
		schoolID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid school_id"})
			return
		}
		query = query.Where("school_id = ?", schoolID)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetUpcomingEvents GET /events/upcoming
// Premium-only events are hidden from free and anonymous viewers.
func GetUpcomingEvents(c *gin.Context) {
	query := database.DB.
		Where("is_public = ? AND start_date >= ?", true, time.Now()).
		Order("start_date asc").
		Limit(50)
	if !viewerIsPremium(c) {
		query = query.Where("is_premium_only = ?", false)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetSchoolEvents GET /schools/:id/events
func GetSchoolEvents(c *gin.Context) {
	schoolID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid school ID"})
		return
	}

	query := database.DB.Where("school_id = ? AND is_public = ?", schoolID, true).Order("start_date asc")
	if !viewerIsPremium(c) {
		query = query.Where("is_premium_only = ?", false)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

type EventInput struct {
	SchoolID      uint       `json:"schoolId" binding:"required"`
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Location      string     `json:"location"`
	StartDate     time.Time  `json:"startDate" binding:"required"`
	EndDate       *time.Time `json:"endDate"`
	IsPublic      *bool      `json:"isPublic"`
	IsPremiumOnly bool       `json:"isPremiumOnly"`
}

// CreateEvent POST /admin/events
func CreateEvent(c *gin.Context) {
	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var school models.School
	if err := database.DB.Select("id").First(&school, "id = ?", input.SchoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	event := models.Event{
		SchoolID:      input.SchoolID,
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		IsPublic:      isPublic,
		IsPremiumOnly: input.IsPremiumOnly,
	}

	if err := database.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// UpdateEvent PUT /admin/events/:id
func UpdateEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var event models.Event
	if err := database.DB.First(&event, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event.SchoolID = input.SchoolID
	event.Title = input.Title
	event.Description = input.Description
	event.Location = input.Location
	event.StartDate = input.StartDate
	event.EndDate = input.EndDate
	if input.IsPublic != nil {
		event.IsPublic = *input.IsPublic
	}
	event.IsPremiumOnly = input.IsPremiumOnly

	if err := database.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent DELETE /admin/events/:id
func DeleteEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	if err := database.DB.Delete(&models.Event{}, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}
