package message

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.GET("/chat-list", handler.ChatList)
	rg.POST("/send", handler.Send)

	messages := rg.Group("/messages")
	{
		messages.GET("/:userId", handler.GetConversation)
		messages.PUT("/:messageId", handler.Edit)
		messages.DELETE("/:messageId", handler.Delete)
		messages.POST("/:messageId/reactions", handler.React)
	}
}
