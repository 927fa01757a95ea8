package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/handlers"
	"github.com/Annsgit/melbourneedu-backend/internal/middleware"
)

func RegisterSubscriptionRoutes(rg *gin.RouterGroup) {
	subs := rg.Group("/subscriptions")
	{
		subs.POST("", middleware.SubmitRateLimit(), handlers.Subscribe)
		subs.GET("/confirm/:token", handlers.ConfirmSubscription)
		subs.POST("/unsubscribe", handlers.Unsubscribe)
		subs.DELETE("", handlers.Unsubscribe)
	}

	prefs := rg.Group("/preferences")
	prefs.Use(middleware.AuthMiddleware())
	{
		prefs.GET("", handlers.GetNotificationPreferences)
		prefs.PUT("", handlers.SetNotificationPreference)
	}

	rg.POST("/push-subscriptions", middleware.AuthMiddleware(), handlers.RegisterPushSubscription)
}
