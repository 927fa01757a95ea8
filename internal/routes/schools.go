package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/handlers"
	"github.com/Annsgit/melbourneedu-backend/internal/middleware"
)

func RegisterSchoolRoutes(rg *gin.RouterGroup) {
	schools := rg.Group("/schools")
	{
		schools.GET("", handlers.GetSchools)
		schools.GET("/featured", handlers.GetFeaturedSchools)
		schools.GET("/search", handlers.SearchSchoolsHandler)
		schools.GET("/:id", handlers.GetSchool)
		schools.GET("/:id/profile", handlers.GetSchoolProfile)

		schools.GET("/:id/rating", handlers.GetSchoolRating)

		// Premium gating on reviews/events needs the viewer's tier when present
		schools.GET("/:id/reviews", middleware.OptionalAuthMiddleware(), handlers.GetSchoolReviews)
		schools.GET("/:id/events", middleware.OptionalAuthMiddleware(), handlers.GetSchoolEvents)
	}

	suburbs := rg.Group("/suburbs")
	{
		suburbs.GET("", handlers.GetSuburbs)
		suburbs.GET("/:name", handlers.GetSuburb)
	}
}
