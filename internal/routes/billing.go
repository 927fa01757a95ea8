package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/handlers"
	"github.com/Annsgit/melbourneedu-backend/internal/middleware"
)

func RegisterBillingRoutes(rg *gin.RouterGroup) {
	billing := rg.Group("/billing")
	{
		// Webhook authenticates by signature, not bearer token
		billing.POST("/webhook", handlers.StripeWebhook)

		protected := billing.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/subscribe", handlers.CreateSubscriptionHandler)
			protected.POST("/cancel", handlers.CancelSubscriptionHandler)
			protected.POST("/portal", handlers.CreatePortalSessionHandler)
		}
	}
}
