package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/handlers"
	"github.com/Annsgit/melbourneedu-backend/internal/middleware"
)

func RegisterGamificationRoutes(rg *gin.RouterGroup) {
	challenges := rg.Group("/challenges")
	{
		challenges.GET("", middleware.OptionalAuthMiddleware(), handlers.GetChallenges)

		protected := challenges.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/progress", handlers.GetMyProgress)
			protected.GET("/:id", handlers.GetChallenge)
			protected.POST("/:id/complete", middleware.SubmitRateLimit(), handlers.CompleteChallenge)
		}
	}

	badges := rg.Group("/badges")
	{
		badges.GET("", handlers.GetBadges)
		badges.GET("/:id", handlers.GetBadge)

		protected := badges.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/mine", handlers.GetMyBadges)
			protected.POST("/check", handlers.CheckBadges)
		}
	}

	rg.GET("/points", middleware.AuthMiddleware(), handlers.GetMyPoints)
}
