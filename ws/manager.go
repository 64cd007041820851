package ws

import (
	"context"

	"sabytin_backend/internal/logger"
	"sabytin_backend/internal/services"
)

type deliverRequest struct {
	userIDs []string
	payload any
}

// Manager владеет реестром подключенных клиентов. Карта clients
// изменяется только внутри Run, вся остальная работа идет через
// каналы, поэтому мьютекс не нужен.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	deliver    chan deliverRequest

	chatService services.ChatService
}

func NewManager(chatService services.ChatService) *Manager {
	return &Manager{
		clients:     make(map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		deliver:     make(chan deliverRequest),
		chatService: chatService,
	}
}

// Run - единственный владелец реестра. Запускается одной горутиной
// на все время жизни приложения и завершается по ctx.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case client := <-m.register:
			// Второе подключение того же пользователя вытесняет первое
			if old, ok := m.clients[client.UserID]; ok && old != client {
				close(old.done)
			}
			m.clients[client.UserID] = client
			logger.Debug("ws client registered", "user_id", client.UserID, "total", len(m.clients))

		case client := <-m.unregister:
			if current, ok := m.clients[client.UserID]; ok && current == client {
				close(client.done)
				delete(m.clients, client.UserID)
				logger.Debug("ws client unregistered", "user_id", client.UserID, "total", len(m.clients))
			}

		case req := <-m.deliver:
			for _, userID := range req.userIDs {
				client, ok := m.clients[userID]
				if !ok {
					continue
				}
				select {
				case client.Send <- req.payload:
				default:
					// Клиент не читает, отключаем его
					close(client.done)
					delete(m.clients, userID)
					logger.Warn("ws client dropped: send buffer full", "user_id", userID)
				}
			}

		case <-ctx.Done():
			for userID, client := range m.clients {
				close(client.done)
				delete(m.clients, userID)
			}
			return
		}
	}
}

// Register ставит клиента в реестр
func (m *Manager) Register(client *Client) {
	m.register <- client
}

// Unregister убирает клиента из реестра
func (m *Manager) Unregister(client *Client) {
	m.unregister <- client
}

// DeliverToDialogue доставляет payload обоим участникам диалога.
// Сообщение уходит только им, общего broadcast нет.
func (m *Manager) DeliverToDialogue(ctx context.Context, dialogueID string, payload any) {
	participants, err := m.chatService.DialogueParticipants(ctx, dialogueID)
	if err != nil {
		logger.WithError(err).Warn("ws delivery skipped: failed to resolve participants", "dialogue_id", dialogueID)
		return
	}
	m.deliver <- deliverRequest{userIDs: participants, payload: payload}
}
