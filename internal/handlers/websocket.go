package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dramoir/dramoir-backend/internal/services"
)

// WebSocketHandler handles WebSocket connections
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		services.HandleWebSocket(hub, c.Writer, c.Request, userID)
	}
}
