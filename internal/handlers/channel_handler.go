package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sabytin_backend/internal/services"
	"sabytin_backend/internal/services/dto"
)

type ChannelHandler struct {
	*BaseHandler
	channelService services.ChannelService
}

func NewChannelHandler(base *BaseHandler, channelService services.ChannelService) *ChannelHandler {
	return &ChannelHandler{
		BaseHandler:    base,
		channelService: channelService,
	}
}

func (h *ChannelHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	channels := rg.Group("/channels")
	channels.Use(authMW)
	{
		channels.GET("", h.List)
		channels.POST("", h.Create)
		channels.GET("/my", h.ListMine)
		channels.POST("/:id/join", h.Join)
		channels.POST("/:id/leave", h.Leave)
	}
}

func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.channelService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

func (h *ChannelHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	channels, err := h.channelService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

func (h *ChannelHandler) Create(c *gin.Context) {
	var req dto.CreateChannelRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	channel, err := h.channelService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, channel)
}

func (h *ChannelHandler) Join(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.channelService.Join(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Joined the channel"})
}

func (h *ChannelHandler) Leave(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.channelService.Leave(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left the channel"})
}
