package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
	chatrepo "sabytin_backend/internal/repositories/chat"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

// ReactionService реализует лайки, дизлайки и определение взаимности.
type ReactionService interface {
	CreateLike(ctx context.Context, fromUserID, toUserID string) (*dto.ReactionResult, error)
	CreateDislike(ctx context.Context, fromUserID, toUserID string) (*dto.ReactionResult, error)
	ListLikes(ctx context.Context, userID string) ([]dto.QuestionnaireResponse, error)
	ListDislikes(ctx context.Context, userID string) ([]dto.QuestionnaireResponse, error)
	FindMatches(ctx context.Context, userID string) ([]dto.QuestionnaireResponse, error)
	ClearLikes(ctx context.Context, userID string) (*dto.ClearedResponse, error)
	ClearDislikes(ctx context.Context, userID string) (*dto.ClearedResponse, error)
}

type ReactionServiceImpl struct {
	db           *gorm.DB
	reactionRepo repositories.ReactionRepository
	userRepo     repositories.UserRepository
	dialogueRepo *chatrepo.DialogueRepository
}

func NewReactionService(
	db *gorm.DB,
	reactionRepo repositories.ReactionRepository,
	userRepo repositories.UserRepository,
	dialogueRepo *chatrepo.DialogueRepository,
) ReactionService {
	return &ReactionServiceImpl{
		db:           db,
		reactionRepo: reactionRepo,
		userRepo:     userRepo,
		dialogueRepo: dialogueRepo,
	}
}

// CreateLike ставит лайк. Вставка ребра и проверка взаимности идут в
// одной транзакции: при встречном лайке там же создается диалог, и
// клиент сразу узнает о взаимности. Дубликат лайка отклоняется
// уникальным индексом, а не предварительным SELECT, поэтому гонка
// двух одинаковых запросов невозможна.
func (s *ReactionServiceImpl) CreateLike(ctx context.Context, fromUserID, toUserID string) (*dto.ReactionResult, error) {
	if fromUserID == toUserID {
		return nil, apperrors.ErrSelfReaction
	}
	if err := s.ensureUserExists(ctx, toUserID); err != nil {
		return nil, err
	}

	result := &dto.ReactionResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txReactions := repositories.NewReactionRepository(tx)

		reaction := &models.Reaction{
			FromUserID: fromUserID,
			ToUserID:   toUserID,
			Kind:       models.ReactionLike,
		}
		if err := txReactions.Create(ctx, reaction); err != nil {
			if err == repositories.ErrAlreadyReacted {
				return apperrors.ErrAlreadyLiked
			}
			return err
		}

		reciprocal, err := txReactions.Exists(ctx, toUserID, fromUserID, models.ReactionLike)
		if err != nil {
			return err
		}
		if !reciprocal {
			return nil
		}

		dialogue, _, err := s.dialogueRepo.CreateIfAbsent(ctx, tx, fromUserID, toUserID)
		if err != nil {
			return err
		}
		result.Matched = true
		result.DialogueID = dialogue.ID
		return nil
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.InternalError(err)
	}
	return result, nil
}

// CreateDislike ставит дизлайк. Дизлайк не отзывает ранее поставленный
// лайк: это независимые ребра.
func (s *ReactionServiceImpl) CreateDislike(ctx context.Context, fromUserID, toUserID string) (*dto.ReactionResult, error) {
	if fromUserID == toUserID {
		return nil, apperrors.ErrSelfReaction
	}
	if err := s.ensureUserExists(ctx, toUserID); err != nil {
		return nil, err
	}

	reaction := &models.Reaction{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Kind:       models.ReactionDislike,
	}
	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		if err == repositories.ErrAlreadyReacted {
			return nil, apperrors.ErrAlreadyDisliked
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.ReactionResult{}, nil
}

func (s *ReactionServiceImpl) ListLikes(ctx context.Context, userID string) ([]dto.QuestionnaireResponse, error) {
	ids, err := s.reactionRepo.ListTargetIDs(ctx, userID, models.ReactionLike)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.questionnairesByIDs(ctx, ids)
}

func (s *ReactionServiceImpl) ListDislikes(ctx context.Context, userID string) ([]dto.QuestionnaireResponse, error) {
	ids, err := s.reactionRepo.ListTargetIDs(ctx, userID, models.ReactionDislike)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.questionnairesByIDs(ctx, ids)
}

// FindMatches возвращает анкеты пользователей со взаимным лайком.
func (s *ReactionServiceImpl) FindMatches(ctx context.Context, userID string) ([]dto.QuestionnaireResponse, error) {
	ids, err := s.reactionRepo.MutualLikeIDs(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.questionnairesByIDs(ctx, ids)
}

func (s *ReactionServiceImpl) ClearLikes(ctx context.Context, userID string) (*dto.ClearedResponse, error) {
	deleted, err := s.reactionRepo.DeleteAllByKind(ctx, userID, models.ReactionLike)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.ClearedResponse{Deleted: deleted}, nil
}

func (s *ReactionServiceImpl) ClearDislikes(ctx context.Context, userID string) (*dto.ClearedResponse, error) {
	deleted, err := s.reactionRepo.DeleteAllByKind(ctx, userID, models.ReactionDislike)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.ClearedResponse{Deleted: deleted}, nil
}

func (s *ReactionServiceImpl) ensureUserExists(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.NewNotFoundError("algorithm", "User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// questionnairesByIDs собирает анкеты в порядке переданных ID.
// Пустой список отдается как 404, как и в остальных выборках подбора.
func (s *ReactionServiceImpl) questionnairesByIDs(ctx context.Context, ids []string) ([]dto.QuestionnaireResponse, error) {
	if len(ids) == 0 {
		return nil, apperrors.ErrNoQuestionnaires
	}
	now := time.Now()
	responses := make([]dto.QuestionnaireResponse, 0, len(ids))
	for _, id := range ids {
		user, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			if err == repositories.ErrUserNotFound {
				// Пользователь мог удалиться после реакции
				continue
			}
			return nil, apperrors.InternalError(err)
		}
		responses = append(responses, dto.QuestionnaireFromModel(user, now))
	}
	if len(responses) == 0 {
		return nil, apperrors.ErrNoQuestionnaires
	}
	return responses, nil
}
