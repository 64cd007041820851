package ws

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"sabytin_backend/internal/logger"
	"sabytin_backend/internal/services"
	"sabytin_backend/pkg/contextkeys"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	manager     *Manager
	chatService services.ChatService
}

func NewHandler(manager *Manager, chatService services.ChatService) *Handler {
	return &Handler{
		manager:     manager,
		chatService: chatService,
	}
}

// ServeWS апгрейдит соединение. Маршрут стоит за auth middleware,
// поэтому userID всегда в контексте.
func (h *Handler) ServeWS(c *gin.Context) {
	userIDVal, exists := c.Get(contextkeys.UserIDKey)
	userID, _ := userIDVal.(string)
	if !exists || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade failed", "user_id", userID)
		return
	}

	client := NewClient(userID, conn, h.manager, h.chatService)
	h.manager.Register(client)

	// Контекст запроса гаснет при возврате из хендлера, пампам нужен свой
	go client.readPump(context.Background())
	go client.writePump()
}
