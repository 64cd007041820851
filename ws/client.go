package ws

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"

	"sabytin_backend/internal/logger"
	"sabytin_backend/internal/services"
	"sabytin_backend/internal/services/dto"
)

// IncomingMessage - кадр, который присылает клиент
type IncomingMessage struct {
	DialogueID string `json:"dialogue_id"`
	Text       string `json:"message"`
}

// ErrorFrame - кадр с ошибкой для отправителя
type ErrorFrame struct {
	Error string `json:"error"`
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan any

	// done закрывает только менеджер, когда снимает клиента с учета.
	// Сам канал Send не закрывается никогда, поэтому trySend безопасен
	// даже после вытеснения.
	done chan struct{}

	manager     *Manager
	chatService services.ChatService
}

func NewClient(userID string, conn *websocket.Conn, manager *Manager, chatService services.ChatService) *Client {
	return &Client{
		UserID:      userID,
		Conn:        conn,
		Send:        make(chan any, 256),
		done:        make(chan struct{}),
		manager:     manager,
		chatService: chatService,
	}
}

// Done сигнализирует, что менеджер отключил клиента
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// readPump читает кадры клиента, сохраняет сообщения и просит
// менеджера доставить их участникам диалога.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.manager.Unregister(c)
		c.Conn.Close()
	}()

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Debug("ws read error", "user_id", c.UserID)
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			c.trySend(ErrorFrame{Error: "invalid message frame"})
			continue
		}

		created, err := c.chatService.SendMessage(ctx, c.UserID, &dto.SendMessageRequest{
			DialogueID: msg.DialogueID,
			Text:       msg.Text,
		})
		if err != nil {
			c.trySend(ErrorFrame{Error: err.Error()})
			continue
		}

		c.manager.DeliverToDialogue(ctx, created.DialogueID, created)
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()

	for {
		select {
		case msg := <-c.Send:
			if err := c.Conn.WriteJSON(msg); err != nil {
				logger.WithError(err).Debug("ws write error", "user_id", c.UserID)
				return
			}
		case <-c.done:
			// закрытие Conn роняет ReadMessage в readPump,
			// обе горутины завершаются
			return
		}
	}
}

// trySend пишет клиенту, не блокируясь на заполненном буфере
func (c *Client) trySend(payload any) {
	select {
	case c.Send <- payload:
	default:
	}
}
