package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/handlers"
	"github.com/Annsgit/melbourneedu-backend/internal/middleware"
)

func RegisterAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())

	// School management
	admin.POST("/schools", handlers.CreateSchool)
	admin.PUT("/schools/:id", handlers.UpdateSchool)
	admin.DELETE("/schools/:id", handlers.DeleteSchool)
	admin.POST("/uploads/school-image", handlers.UploadSchoolImage)

	// Suburbs
	admin.POST("/suburbs", handlers.CreateSuburb)
	admin.PUT("/suburbs/:id", handlers.UpdateSuburb)
	admin.DELETE("/suburbs/:id", handlers.DeleteSuburb)

	// Events
	admin.POST("/events", handlers.CreateEvent)
	admin.PUT("/events/:id", handlers.UpdateEvent)
	admin.DELETE("/events/:id", handlers.DeleteEvent)

	// Gamification catalog
	admin.POST("/challenges", handlers.CreateChallenge)
	admin.PUT("/challenges/:id", handlers.UpdateChallenge)
	admin.DELETE("/challenges/:id", handlers.DeleteChallenge)
	admin.POST("/badges", handlers.CreateBadge)
	admin.PUT("/badges/:id", handlers.UpdateBadge)
	admin.DELETE("/badges/:id", handlers.DeleteBadge)

	// Direct grants
	admin.POST("/users/:id/badges/:badgeId", handlers.AwardBadge)
	admin.POST("/users/:id/points", handlers.GrantPoints)
}
