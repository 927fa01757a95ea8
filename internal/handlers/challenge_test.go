package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Annsgit/melbourneedu-backend/internal/config"
	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/middleware"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
	"github.com/Annsgit/melbourneedu-backend/pkg/logger"
	"github.com/Annsgit/melbourneedu-backend/pkg/utils"
)

var testDBCounter int64

// SetupTestDB initializes an in-memory SQLite DB for handler tests
func SetupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("development")
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	database.DB = db
	require.NoError(t, database.DB.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.Review{},
		&models.Event{},
		&models.Challenge{},
		&models.ChallengeProgress{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Notification{},
	))
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	r.GET("/challenges", middleware.OptionalAuthMiddleware(), GetChallenges)
	r.GET("/schools/:id/reviews", middleware.OptionalAuthMiddleware(), GetSchoolReviews)
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/challenges/:id/complete", CompleteChallenge)
		protected.GET("/challenges/progress", GetMyProgress)
		protected.GET("/points", GetMyPoints)
		protected.GET("/badges/mine", GetMyBadges)
	}
	return r
}

func createUserWithToken(t *testing.T, tier models.SubscriptionTier) (models.User, string) {
	t.Helper()
	user := models.User{
		Username:         fmt.Sprintf("tester%d", atomic.AddInt64(&testDBCounter, 1)),
		Email:            fmt.Sprintf("tester%d@example.com", testDBCounter),
		SubscriptionTier: tier,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func TestGetChallenges_HidesPremiumFromAnonymous(t *testing.T) {
	SetupTestDB(t)

	database.DB.Create(&models.Challenge{Title: "Free One", ChallengeType: models.ChallengeViewSchools, Points: 10, IsActive: true})
	database.DB.Create(&models.Challenge{Title: "Premium One", ChallengeType: models.ChallengeViewSchools, Points: 50, IsActive: true, IsPremiumOnly: true})

	r := newTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/challenges", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Challenges []models.Challenge `json:"challenges"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Challenges, 1)
	assert.Equal(t, "Free One", resp.Challenges[0].Title)
}

func TestGetChallenges_ShowsPremiumToPremiumUser(t *testing.T) {
	SetupTestDB(t)
	_, token := createUserWithToken(t, models.TierPremium)

	database.DB.Create(&models.Challenge{Title: "Free One", ChallengeType: models.ChallengeViewSchools, Points: 10, IsActive: true})
	database.DB.Create(&models.Challenge{Title: "Premium One", ChallengeType: models.ChallengeViewSchools, Points: 50, IsActive: true, IsPremiumOnly: true})

	r := newTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/challenges", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Challenges []models.Challenge `json:"challenges"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Challenges, 2)
}

func TestCompleteChallenge_FullFlow(t *testing.T) {
	SetupTestDB(t)
	user, token := createUserWithToken(t, models.TierFree)

	challenge := models.Challenge{Title: "First Steps", ChallengeType: models.ChallengeViewSchools, Points: 10, IsActive: true}
	require.NoError(t, database.DB.Create(&challenge).Error)

	badge := models.Badge{
		Name:         "Getting Started",
		BadgeType:    models.BadgeQuizChampion,
		Level:        1,
		Requirements: models.BadgeRequirements{ChallengesCompleted: 1},
	}
	require.NoError(t, database.DB.Create(&badge).Error)

	r := newTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", fmt.Sprintf("/challenges/%d/complete", challenge.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalPoints int `json:"totalPoints"`
		Progress    struct {
			Status string `json:"status"`
		} `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.TotalPoints)
	assert.Equal(t, string(models.StatusCompleted), resp.Progress.Status)

	// The completion triggered badge evaluation
	var held int64
	database.DB.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&held)
	assert.Equal(t, int64(1), held)
}

func TestCompleteChallenge_RepeatKeepsSinglePayout(t *testing.T) {
	SetupTestDB(t)
	_, token := createUserWithToken(t, models.TierFree)

	challenge := models.Challenge{Title: "First Steps", ChallengeType: models.ChallengeViewSchools, Points: 10, IsActive: true}
	require.NoError(t, database.DB.Create(&challenge).Error)

	r := newTestRouter()
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", fmt.Sprintf("/challenges/%d/complete", challenge.ID), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			TotalPoints int `json:"totalPoints"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 10, resp.TotalPoints)
	}
}

func TestCompleteChallenge_PremiumGated(t *testing.T) {
	SetupTestDB(t)
	_, token := createUserWithToken(t, models.TierFree)

	challenge := models.Challenge{Title: "Premium Only", ChallengeType: models.ChallengeViewSchools, Points: 100, IsActive: true, IsPremiumOnly: true}
	require.NoError(t, database.DB.Create(&challenge).Error)

	r := newTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", fmt.Sprintf("/challenges/%d/complete", challenge.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCompleteChallenge_InactiveRejected(t *testing.T) {
	SetupTestDB(t)
	_, token := createUserWithToken(t, models.TierFree)

	challenge := models.Challenge{Title: "Retired", ChallengeType: models.ChallengeViewSchools, Points: 10, IsActive: false}
	require.NoError(t, database.DB.Create(&challenge).Error)

	r := newTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", fmt.Sprintf("/challenges/%d/complete", challenge.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExplicitlyFalseFlagsSurviveCreate(t *testing.T) {
	SetupTestDB(t)
	user, _ := createUserWithToken(t, models.TierFree)

	school := models.School{Name: "Kew High School", Type: "Public", EducationLevel: "Secondary", Suburb: "Kew", Postcode: "3101"}
	require.NoError(t, database.DB.Create(&school).Error)

	challenge := models.Challenge{Title: "Drafted", ChallengeType: models.ChallengeViewSchools, Points: 10, IsActive: false}
	require.NoError(t, database.DB.Create(&challenge).Error)
	review := models.Review{SchoolID: school.ID, UserID: user.ID, Rating: 4, Content: "draft notes", IsPublic: false}
	require.NoError(t, database.DB.Create(&review).Error)
	event := models.Event{SchoolID: school.ID, Title: "Staff briefing", StartDate: time.Now().Add(24 * time.Hour), IsPublic: false}
	require.NoError(t, database.DB.Create(&event).Error)

	var gotChallenge models.Challenge
	require.NoError(t, database.DB.First(&gotChallenge, challenge.ID).Error)
	assert.False(t, gotChallenge.IsActive, "challenge created inactive must stay inactive")

	var gotReview models.Review
	require.NoError(t, database.DB.First(&gotReview, review.ID).Error)
	assert.False(t, gotReview.IsPublic, "review created private must stay private")

	var gotEvent models.Event
	require.NoError(t, database.DB.First(&gotEvent, event.ID).Error)
	assert.False(t, gotEvent.IsPublic, "event created non-public must stay hidden")
}

func TestPrivateReviewNotServed(t *testing.T) {
	SetupTestDB(t)
	user, _ := createUserWithToken(t, models.TierFree)

	school := models.School{Name: "Kew High School", Type: "Public", EducationLevel: "Secondary", Suburb: "Kew", Postcode: "3101"}
	require.NoError(t, database.DB.Create(&school).Error)

	require.NoError(t, database.DB.Create(&models.Review{SchoolID: school.ID, UserID: user.ID, Rating: 2, Content: "kept to myself", IsPublic: false}).Error)

	r := newTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", fmt.Sprintf("/schools/%d/reviews", school.ID), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reviews []models.Review `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Reviews)
}

func TestCompleteChallenge_RequiresAuth(t *testing.T) {
	SetupTestDB(t)

	r := newTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/challenges/1/complete", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
