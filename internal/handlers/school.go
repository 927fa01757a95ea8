package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
	"github.com/Annsgit/melbourneedu-backend/internal/services"
	"github.com/Annsgit/melbourneedu-backend/pkg/logger"
)

const schoolCacheTTL = 5 * time.Minute

// GetSchools GET /schools
// Supports optional ?type=, ?level=, ?suburb= filters
func GetSchools(c *gin.Context) {
	schoolType := c.Query("type")
	level := c.Query("level")
	suburb := c.Query("suburb")

	cacheKey := fmt.Sprintf("schools:list:%s:%s:%s", schoolType, level, suburb)
	var cached []models.School
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"schools": cached})
		return
	}

	query := database.DB.Order("name asc")
	if schoolType != "" {
		query = query.Where("type = ?", schoolType)
	}
	if level != "" {
		query = query.Where("education_level = ?", level)
	}
	if suburb != "" {
		query = query.Where("LOWER(suburb) = ?", strings.ToLower(suburb))
	}

	var schools []models.School
	if err := query.Find(&schools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schools"})
		return
	}

	if err := database.CacheSet(cacheKey, schools, schoolCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache school list")
	}

	c.JSON(http.StatusOK, gin.H{"schools": schools})
}

// GetFeaturedSchools GET /schools/featured
func GetFeaturedSchools(c *gin.Context) {
	var cached []models.School
	if err := database.CacheGet("schools:featured", &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"schools": cached})
		return
	}

	var schools []models.School
	if err := database.DB.Where("featured = ?", true).Order("name asc").Find(&schools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured schools"})
		return
	}

	if err := database.CacheSet("schools:featured", schools, schoolCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache featured schools")
	}

	c.JSON(http.StatusOK, gin.H{"schools": schools})
}

// SearchSchoolsHandler GET /schools/search?q=
func SearchSchoolsHandler(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	schools, err := services.SearchSchools(q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"schools": schools})
}

// GetSchool GET /schools/:id
func GetSchool(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid school ID"})
		return
	}

	var school models.School
	if err := database.DB.First(&school, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"school": school})
}

// GetSchoolProfile GET /schools/:id/profile
// Returns the school with its languages, facilities and enrichment programs
func GetSchoolProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid school ID"})
		return
	}

	var school models.School
	if err := database.DB.First(&school, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}

	profile := models.FullSchoolProfile{School: school}
	database.DB.Where("school_id = ?", id).Find(&profile.Languages)
	database.DB.Where("school_id = ?", id).Find(&profile.Facilities)
	database.DB.Where("school_id = ?", id).Find(&profile.Programs)

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// --- Admin CRUD ---

type SchoolInput struct {
	Name           string   `json:"name" binding:"required"`
	Type           string   `json:"type" binding:"required,oneof=Public Private Catholic"`
	EducationLevel string   `json:"educationLevel" binding:"required,oneof=Primary Secondary Combined"`
	Suburb         string   `json:"suburb" binding:"required"`
	Postcode       string   `json:"postcode" binding:"required"`
	Address        string   `json:"address"`
	Website        string   `json:"website"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Description    string   `json:"description"`
	YearLevels     string   `json:"yearLevels"`
	StudentCount   int      `json:"studentCount"`
	AtarAverage    int      `json:"atarAverage"`
	Fees           string   `json:"fees"`
	Facilities     []string `json:"facilities"`
	Programs       []string `json:"programs"`
	ImageURL       string   `json:"imageUrl"`
	Featured       bool     `json:"featured"`
}

// CreateSchool POST /admin/schools
func CreateSchool(c *gin.Context) {
	var input SchoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	school := models.School{
		Name:           input.Name,
		Type:           input.Type,
		EducationLevel: input.EducationLevel,
		Suburb:         input.Suburb,
		Postcode:       input.Postcode,
		Address:        input.Address,
		Website:        input.Website,
		Phone:          input.Phone,
		Email:          input.Email,
		Description:    input.Description,
		YearLevels:     input.YearLevels,
		StudentCount:   input.StudentCount,
		AtarAverage:    input.AtarAverage,
		Fees:           input.Fees,
		Facilities:     input.Facilities,
		Programs:       input.Programs,
		ImageURL:       input.ImageURL,
		Featured:       input.Featured,
	}

	if err := database.DB.Create(&school).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create school")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create school"})
		return
	}

	invalidateSchoolCache()
	c.JSON(http.StatusCreated, gin.H{"school": school})
}

// UpdateSchool PUT /admin/schools/:id
func UpdateSchool(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid school ID"})
		return
	}

	var school models.School
	if err := database.DB.First(&school, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "School not found"})
		return
	}

	var input SchoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	school.Name = input.Name
	school.Type = input.Type
	school.EducationLevel = input.EducationLevel
	school.Suburb = input.Suburb
	school.Postcode = input.Postcode
	school.Address = input.Address
	school.Website = input.Website
	school.Phone = input.Phone
	school.Email = input.Email
	school.Description = input.Description
	school.YearLevels = input.YearLevels
	school.StudentCount = input.StudentCount
	school.AtarAverage = input.AtarAverage
	school.Fees = input.Fees
	school.Facilities = input.Facilities
	school.Programs = input.Programs
	school.ImageURL = input.ImageURL
	school.Featured = input.Featured

	if err := database.DB.Save(&school).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update school"})
		return
	}

	invalidateSchoolCache()
	c.JSON(http.StatusOK, gin.H{"school": school})
}

// DeleteSchool DELETE /admin/schools/:id
func DeleteSchool(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid school ID"})
		return
	}

	if err := database.DB.Delete(&models.School{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete school"})
		return
	}

	invalidateSchoolCache()
	c.JSON(http.StatusOK, gin.H{"message": "School deleted"})
}

func invalidateSchoolCache() {
	if err := database.CacheInvalidate("schools:*"); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate school cache")
	}
}
