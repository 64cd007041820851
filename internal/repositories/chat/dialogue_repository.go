package chat

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sabytin_backend/internal/models/chat"
)

var ErrDialogueNotFound = errors.New("dialogue not found")

type DialogueRepository struct {
	DB *gorm.DB
}

func NewDialogueRepository(db *gorm.DB) *DialogueRepository {
	return &DialogueRepository{DB: db}
}

// FindByID возвращает диалог по ID
func (r *DialogueRepository) FindByID(ctx context.Context, id string) (*chat.Dialogue, error) {
	var dialogue chat.Dialogue
	err := r.DB.WithContext(ctx).First(&dialogue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDialogueNotFound
		}
		return nil, err
	}
	return &dialogue, nil
}

// FindByPair ищет диалог между двумя пользователями. Порядок аргументов
// не важен: пара нормализуется.
func (r *DialogueRepository) FindByPair(ctx context.Context, user1ID, user2ID string) (*chat.Dialogue, error) {
	a, b := chat.NormalizePair(user1ID, user2ID)
	var dialogue chat.Dialogue
	err := r.DB.WithContext(ctx).First(&dialogue, "user_a_id = ? AND user_b_id = ?", a, b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDialogueNotFound
		}
		return nil, err
	}
	return &dialogue, nil
}

// CreateIfAbsent создает диалог для пары, если его еще нет, и возвращает
// актуальную запись. ON CONFLICT DO NOTHING вместе с уникальным индексом
// по нормализованной паре гарантирует единственный диалог даже при
// одновременных взаимных лайках.
func (r *DialogueRepository) CreateIfAbsent(ctx context.Context, tx *gorm.DB, user1ID, user2ID string) (*chat.Dialogue, bool, error) {
	if tx == nil {
		tx = r.DB
	}
	tx = tx.WithContext(ctx)
	a, b := chat.NormalizePair(user1ID, user2ID)
	dialogue := chat.Dialogue{UserAID: a, UserBID: b}

	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
		DoNothing: true,
	}).Create(&dialogue)
	if result.Error != nil {
		return nil, false, result.Error
	}
	created := result.RowsAffected > 0
	if created {
		return &dialogue, true, nil
	}

	// Конфликт: диалог уже существовал, перечитываем его
	var existing chat.Dialogue
	if err := tx.First(&existing, "user_a_id = ? AND user_b_id = ?", a, b).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

// ListForUser возвращает все диалоги пользователя, свежие сверху
func (r *DialogueRepository) ListForUser(ctx context.Context, userID string) ([]chat.Dialogue, error) {
	var dialogues []chat.Dialogue
	err := r.DB.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&dialogues).Error
	return dialogues, err
}

// UpdateLastMessage обновляет указатель на последнее сообщение
func (r *DialogueRepository) UpdateLastMessage(ctx context.Context, dialogueID string, messageID string) error {
	return r.DB.WithContext(ctx).Model(&chat.Dialogue{}).
		Where("id = ?", dialogueID).
		Update("last_message_id", messageID).Error
}
