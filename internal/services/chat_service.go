package services

import (
	"context"

	chatmodels "sabytin_backend/internal/models/chat"
	chatrepo "sabytin_backend/internal/repositories/chat"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

const defaultMessagePage = 50

// ChatService реализует переписку внутри диалогов. Диалоги создаются
// только детектором взаимных лайков, здесь они лишь читаются.
type ChatService interface {
	SendMessage(ctx context.Context, userID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	LoadMessages(ctx context.Context, userID string, req *dto.LoadMessagesRequest) ([]dto.MessageResponse, error)
	EditMessage(ctx context.Context, userID, messageID, text string) (*dto.MessageResponse, error)
	DeleteMessage(ctx context.Context, userID, messageID string) error
	ListDialogues(ctx context.Context, userID string) ([]dto.DialogueResponse, error)
	DialogueParticipants(ctx context.Context, dialogueID string) ([]string, error)
}

type ChatServiceImpl struct {
	dialogueRepo *chatrepo.DialogueRepository
	messageRepo  *chatrepo.MessageRepository
}

func NewChatService(dialogueRepo *chatrepo.DialogueRepository, messageRepo *chatrepo.MessageRepository) ChatService {
	return &ChatServiceImpl{
		dialogueRepo: dialogueRepo,
		messageRepo:  messageRepo,
	}
}

// SendMessage сохраняет сообщение. Писать можно только в диалог,
// участником которого является отправитель.
func (s *ChatServiceImpl) SendMessage(ctx context.Context, userID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if _, err := s.authorizeDialogue(ctx, req.DialogueID, userID); err != nil {
		return nil, err
	}

	message := &chatmodels.Message{
		DialogueID: req.DialogueID,
		UserID:     userID,
		Text:       req.Text,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.dialogueRepo.UpdateLastMessage(ctx, req.DialogueID, message.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.MessageResponseFromModel(message), nil
}

// LoadMessages возвращает страницу истории диалога, новые сверху
func (s *ChatServiceImpl) LoadMessages(ctx context.Context, userID string, req *dto.LoadMessagesRequest) ([]dto.MessageResponse, error) {
	if _, err := s.authorizeDialogue(ctx, req.DialogueID, userID); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultMessagePage
	}

	messages, err := s.messageRepo.ListByDialogue(ctx, req.DialogueID, limit, req.Offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, *dto.MessageResponseFromModel(&messages[i]))
	}
	return responses, nil
}

// EditMessage правит текст. Чужие сообщения менять нельзя.
func (s *ChatServiceImpl) EditMessage(ctx context.Context, userID, messageID, text string) (*dto.MessageResponse, error) {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		if err == chatrepo.ErrMessageNotFound {
			return nil, apperrors.NewNotFoundError("chat", "Message not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if message.UserID != userID {
		return nil, apperrors.ErrCannotModifyMessage
	}

	if err := s.messageRepo.UpdateText(ctx, messageID, text); err != nil {
		return nil, apperrors.InternalError(err)
	}

	message.Text = text
	message.Edited = true
	return dto.MessageResponseFromModel(message), nil
}

// DeleteMessage прячет сообщение. Чужие сообщения удалять нельзя.
func (s *ChatServiceImpl) DeleteMessage(ctx context.Context, userID, messageID string) error {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		if err == chatrepo.ErrMessageNotFound {
			return apperrors.NewNotFoundError("chat", "Message not found")
		}
		return apperrors.InternalError(err)
	}
	if message.UserID != userID {
		return apperrors.ErrCannotModifyMessage
	}

	if err := s.messageRepo.SoftDelete(ctx, messageID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ChatServiceImpl) ListDialogues(ctx context.Context, userID string) ([]dto.DialogueResponse, error) {
	dialogues, err := s.dialogueRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.DialogueResponse, 0, len(dialogues))
	for i := range dialogues {
		responses = append(responses, *dto.DialogueResponseFromModel(&dialogues[i], userID))
	}
	return responses, nil
}

// DialogueParticipants отдает пару участников для адресной ws-доставки
func (s *ChatServiceImpl) DialogueParticipants(ctx context.Context, dialogueID string) ([]string, error) {
	dialogue, err := s.dialogueRepo.FindByID(ctx, dialogueID)
	if err != nil {
		if err == chatrepo.ErrDialogueNotFound {
			return nil, apperrors.ErrDialogueNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dialogue.ParticipantIDs(), nil
}

// authorizeDialogue проверяет, что userID - участник диалога
func (s *ChatServiceImpl) authorizeDialogue(ctx context.Context, dialogueID, userID string) (*chatmodels.Dialogue, error) {
	dialogue, err := s.dialogueRepo.FindByID(ctx, dialogueID)
	if err != nil {
		if err == chatrepo.ErrDialogueNotFound {
			return nil, apperrors.ErrDialogueNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !dialogue.HasParticipant(userID) {
		return nil, apperrors.ErrDialogueAccessDenied
	}
	return dialogue, nil
}
