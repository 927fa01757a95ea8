package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/handlers"
	"github.com/Annsgit/melbourneedu-backend/internal/middleware"
)

func RegisterAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", middleware.AuthRateLimit(), handlers.Register)
		auth.POST("/login", middleware.AuthRateLimit(), handlers.Login)
		auth.GET("/check-username", handlers.CheckUsername)

		auth.GET("/google", handlers.GoogleLogin)
		auth.GET("/google/callback", handlers.GoogleCallback)

		protected := auth.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", handlers.Me)
			protected.POST("/logout", handlers.Logout)
		}
	}
}
