package message

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	messages := r.Group("/messages")
	{
		messages.POST("", h.Create)
		messages.GET("/conversation/:userId/:otherId", h.GetConversation)
		messages.GET("/group/:groupId", h.GetGroup)
		messages.PUT("/:messageId/read", h.MarkRead)
		messages.DELETE("/:messageId", h.Delete)
	}
}
