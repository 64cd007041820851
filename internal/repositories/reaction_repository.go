package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sabytin_backend/internal/models"
)

// ErrAlreadyReacted возвращается при повторной реакции того же вида
// на того же пользователя. Определяется уникальным индексом по ребру
// (from_user_id, to_user_id, kind), а не предварительным SELECT.
var ErrAlreadyReacted = errors.New("reaction already exists")

type ReactionRepository interface {
	Create(ctx context.Context, reaction *models.Reaction) error
	Exists(ctx context.Context, fromUserID, toUserID string, kind models.ReactionKind) (bool, error)
	ListTargetIDs(ctx context.Context, fromUserID string, kind models.ReactionKind) ([]string, error)
	MutualLikeIDs(ctx context.Context, userID string) ([]string, error)
	DeleteAllByKind(ctx context.Context, fromUserID string, kind models.ReactionKind) (int64, error)
}

type ReactionRepositoryImpl struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &ReactionRepositoryImpl{db: db}
}

// Create вставляет ребро реакции. Дубликат оборачивается в ErrAlreadyReacted.
func (r *ReactionRepositoryImpl) Create(ctx context.Context, reaction *models.Reaction) error {
	err := r.db.WithContext(ctx).Create(reaction).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyReacted
	}
	return err
}

func (r *ReactionRepositoryImpl) Exists(ctx context.Context, fromUserID, toUserID string, kind models.ReactionKind) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("from_user_id = ? AND to_user_id = ? AND kind = ?", fromUserID, toUserID, kind).
		Count(&count).Error
	return count > 0, err
}

// ListTargetIDs возвращает ID всех пользователей, которым fromUserID
// поставил реакцию указанного вида, в порядке создания.
func (r *ReactionRepositoryImpl) ListTargetIDs(ctx context.Context, fromUserID string, kind models.ReactionKind) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("from_user_id = ? AND kind = ?", fromUserID, kind).
		Order("created_at ASC").
		Pluck("to_user_id", &ids).Error
	return ids, err
}

// MutualLikeIDs возвращает ID пользователей, с которыми у userID взаимный лайк.
func (r *ReactionRepositoryImpl) MutualLikeIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("from_user_id = ? AND kind = ?", userID, models.ReactionLike).
		Where("to_user_id IN (?)", r.db.WithContext(ctx).Model(&models.Reaction{}).
			Select("from_user_id").
			Where("to_user_id = ? AND kind = ?", userID, models.ReactionLike)).
		Order("created_at ASC").
		Pluck("to_user_id", &ids).Error
	return ids, err
}

func (r *ReactionRepositoryImpl) DeleteAllByKind(ctx context.Context, fromUserID string, kind models.ReactionKind) (int64, error) {
	result := r.db.WithContext(ctx).Where("from_user_id = ? AND kind = ?", fromUserID, kind).
		Delete(&models.Reaction{})
	return result.RowsAffected, result.Error
}
