package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
)

// GetSuburbs GET /suburbs
// Supports ?postcode= and ?q= (name prefix) filters.
func GetSuburbs(c *gin.Context) {
	query := database.DB.Order("name asc")
	if postcode := strings.TrimSpace(c.Query("postcode")); postcode != "" {
		query = query.Where("postcode = ?", postcode)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = query.Where("LOWER(name) LIKE ?", strings.ToLower(q)+"%")
	}

	var suburbs []models.Suburb
	if err := query.Find(&suburbs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suburbs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suburbs": suburbs})
}

// GetSuburb GET /suburbs/:name
// Looks up a suburb by name, case-insensitive, with its schools
func GetSuburb(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Suburb name required"})
		return
	}

	var suburb models.Suburb
	if err := database.DB.Where("LOWER(name) = ?", strings.ToLower(name)).First(&suburb).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suburb not found"})
		return
	}

	var schools []models.School
	database.DB.Where("LOWER(suburb) = ?", strings.ToLower(suburb.Name)).Order("name asc").Find(&schools)

	c.JSON(http.StatusOK, gin.H{
		"suburb":  suburb,
		"schools": schools,
	})
}

type SuburbInput struct {
	Name       string `json:"name" binding:"required"`
	Postcode   string `json:"postcode" binding:"required"`
	Region     string `json:"region"`
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
	Population int    `json:"population"`
}

// CreateSuburb POST /admin/suburbs
func CreateSuburb(c *gin.Context) {
	var input SuburbInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suburb := models.Suburb{
		Name:       input.Name,
		Postcode:   input.Postcode,
		Region:     input.Region,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		Population: input.Population,
	}

	if err := database.DB.Create(&suburb).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Suburb already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"suburb": suburb})
}

// UpdateSuburb PUT /admin/suburbs/:id
func UpdateSuburb(c *gin.Context) {
	suburbID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid suburb ID"})
		return
	}

	var suburb models.Suburb
	if err := database.DB.First(&suburb, "id = ?", suburbID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suburb not found"})
		return
	}

	var input SuburbInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suburb.Name = input.Name
	suburb.Postcode = input.Postcode
	suburb.Region = input.Region
	suburb.Latitude = input.Latitude
	suburb.Longitude = input.Longitude
	suburb.Population = input.Population

	if err := database.DB.Save(&suburb).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update suburb"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suburb": suburb})
}

// DeleteSuburb DELETE /admin/suburbs/:id
func DeleteSuburb(c *gin.Context) {
	suburbID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid suburb ID"})
		return
	}

	result := database.DB.Delete(&models.Suburb{}, "id = ?", suburbID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete suburb"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Suburb not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Suburb deleted"})
}
