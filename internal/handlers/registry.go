package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	AlgorithmHandler *AlgorithmHandler
	UserHandler      *UserHandler
	EventHandler     *EventHandler
	ChannelHandler   *ChannelHandler
	ChatHandler      *ChatHandler
	PhotoHandler     *PhotoHandler
}
