package routes

import (
	"github.com/gin-gonic/gin"

	"sabytin_backend/internal/handlers"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
// Префикса /api нет: пути совпадают с теми, что ждет фронтенд.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
) {
	root := ginRouter.Group("")
	{
		appHandlers.AuthHandler.RegisterRoutes(root, authMW)
		appHandlers.AlgorithmHandler.RegisterRoutes(root, authMW)
		appHandlers.UserHandler.RegisterRoutes(root, authMW)
		appHandlers.EventHandler.RegisterRoutes(root, authMW)
		appHandlers.ChannelHandler.RegisterRoutes(root, authMW)
		appHandlers.ChatHandler.RegisterRoutes(root, authMW)
		appHandlers.PhotoHandler.RegisterRoutes(root, authMW)
	}
}
