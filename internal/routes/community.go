package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/handlers"
	"github.com/Annsgit/melbourneedu-backend/internal/middleware"
)

func RegisterCommunityRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.POST("", middleware.AuthMiddleware(), middleware.SubmitRateLimit(), handlers.CreateReview)
		reviews.GET("/mine", middleware.AuthMiddleware(), handlers.GetMyReviews)
		reviews.DELETE("/:id", middleware.AuthMiddleware(), handlers.DeleteReview)
	}

	events := rg.Group("/events")
	{
		events.GET("", middleware.OptionalAuthMiddleware(), handlers.GetEvents)
		events.GET("/upcoming", middleware.OptionalAuthMiddleware(), handlers.GetUpcomingEvents)
	}
}
