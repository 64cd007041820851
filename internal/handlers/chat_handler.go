package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sabytin_backend/internal/services"
	"sabytin_backend/internal/services/dto"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
	serveWS     gin.HandlerFunc
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService, serveWS gin.HandlerFunc) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
		serveWS:     serveWS,
	}
}

func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	chat := rg.Group("/chat")
	chat.Use(authMW)
	{
		chat.GET("/ws", h.serveWS)
		chat.GET("/load_messages", h.LoadMessages)
		chat.GET("/dialogues", h.ListDialogues)
		chat.POST("/messages", h.SendMessage)
		chat.PATCH("/messages/:id", h.EditMessage)
		chat.DELETE("/messages/:id", h.DeleteMessage)
	}
}

func (h *ChatHandler) LoadMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.LoadMessagesRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	messages, err := h.chatService.LoadMessages(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) ListDialogues(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	dialogues, err := h.chatService.ListDialogues(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dialogues)
}

// SendMessage - REST-дублер ws-отправки, удобен для клиентов без сокета
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *ChatHandler) EditMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EditMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.chatService.EditMessage(c.Request.Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.chatService.DeleteMessage(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
