package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Annsgit/melbourneedu-backend/internal/handlers"
	"github.com/Annsgit/melbourneedu-backend/internal/middleware"
)

func RegisterChatRoutes(rg *gin.RouterGroup) {
	chat := rg.Group("/chat")
	{
		chat.POST("/query", middleware.ChatRateLimit(), middleware.OptionalAuthMiddleware(), handlers.SchoolBotQuery)
	}
}
