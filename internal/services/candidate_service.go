package services

import (
	"context"
	"sort"
	"time"

	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

// CandidateService подбирает анкеты под сохраненные фильтры.
// Каждый заданный критерий дает отдельное множество ID, множества
// объединяются, кандидаты ранжируются по числу совпавших критериев.
// Совпадение хотя бы по одному критерию оставляет кандидата в выдаче.
type CandidateService interface {
	ListQuestionnaires(ctx context.Context, userID string) ([]dto.QuestionnaireResponse, error)
}

type CandidateServiceImpl struct {
	candidateRepo repositories.CandidateRepository
	filterRepo    repositories.FilterRepository
	reactionRepo  repositories.ReactionRepository
	userRepo      repositories.UserRepository
	photoRepo     repositories.PhotoRepository
}

func NewCandidateService(
	candidateRepo repositories.CandidateRepository,
	filterRepo repositories.FilterRepository,
	reactionRepo repositories.ReactionRepository,
	userRepo repositories.UserRepository,
	photoRepo repositories.PhotoRepository,
) CandidateService {
	return &CandidateServiceImpl{
		candidateRepo: candidateRepo,
		filterRepo:    filterRepo,
		reactionRepo:  reactionRepo,
		userRepo:      userRepo,
		photoRepo:     photoRepo,
	}
}

func (s *CandidateServiceImpl) ListQuestionnaires(ctx context.Context, userID string) ([]dto.QuestionnaireResponse, error) {
	excluded, err := s.excludedIDs(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	scores, err := s.scoreCandidates(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ranked := rankCandidates(scores, excluded)

	if len(ranked) == 0 {
		// Ни один критерий не совпал: запасная выдача без ранжирования
		ranked, err = s.fallbackCandidates(ctx, userID, excluded)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if len(ranked) == 0 {
		return nil, apperrors.ErrNoQuestionnaires
	}

	return s.buildQuestionnaires(ctx, ranked)
}

// excludedIDs - сам пользователь и все, на кого он уже отреагировал.
func (s *CandidateServiceImpl) excludedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	excluded := map[string]bool{userID: true}

	liked, err := s.reactionRepo.ListTargetIDs(ctx, userID, models.ReactionLike)
	if err != nil {
		return nil, err
	}
	disliked, err := s.reactionRepo.ListTargetIDs(ctx, userID, models.ReactionDislike)
	if err != nil {
		return nil, err
	}
	for _, id := range liked {
		excluded[id] = true
	}
	for _, id := range disliked {
		excluded[id] = true
	}
	return excluded, nil
}

// scoreCandidates считает, сколько критериев фильтра совпало у каждого
// кандидата. Отсутствующий фильтр дает пустую карту, что уводит выдачу
// в fallback.
func (s *CandidateServiceImpl) scoreCandidates(ctx context.Context, userID string) (map[string]int, error) {
	filter, err := s.filterRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == repositories.ErrFilterNotFound {
			return map[string]int{}, nil
		}
		return nil, err
	}

	now := time.Now()
	var sets [][]string

	if filter.City != nil {
		ids, err := s.candidateRepo.IDsByCity(ctx, *filter.City)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ids)
	}
	if filter.GenderID != nil {
		ids, err := s.candidateRepo.IDsByGender(ctx, *filter.GenderID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ids)
	}
	if filter.TargetID != nil {
		ids, err := s.candidateRepo.IDsByTarget(ctx, *filter.TargetID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ids)
	}
	if filter.CommunicationID != nil {
		ids, err := s.candidateRepo.IDsByCommunication(ctx, *filter.CommunicationID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ids)
	}
	if filter.HeightMin != nil || filter.HeightMax != nil {
		ids, err := s.candidateRepo.IDsByHeightRange(ctx, filter.HeightMin, filter.HeightMax)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ids)
	}
	if filter.AgeMin != nil || filter.AgeMax != nil {
		ids, err := s.candidateRepo.IDsByAgeRange(ctx, filter.AgeMin, filter.AgeMax, now)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ids)
	}

	interestIDs, err := s.filterRepo.ListInterestIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(interestIDs) > 0 {
		ids, err := s.candidateRepo.IDsBySharedInterest(ctx, userID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ids)
	}

	scores := make(map[string]int)
	for _, set := range sets {
		for _, id := range set {
			scores[id]++
		}
	}
	return scores, nil
}

// rankCandidates сортирует по убыванию совпадений. При равном счете
// порядок фиксируется по ID, чтобы выдача была детерминированной.
func rankCandidates(scores map[string]int, excluded map[string]bool) []string {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		if !excluded[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (s *CandidateServiceImpl) fallbackCandidates(ctx context.Context, userID string, excluded map[string]bool) ([]string, error) {
	all, err := s.candidateRepo.IDsAllExcept(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(all))
	for _, id := range all {
		if !excluded[id] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *CandidateServiceImpl) buildQuestionnaires(ctx context.Context, ids []string) ([]dto.QuestionnaireResponse, error) {
	now := time.Now()
	responses := make([]dto.QuestionnaireResponse, 0, len(ids))
	for _, id := range ids {
		user, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			if err == repositories.ErrUserNotFound {
				continue
			}
			return nil, apperrors.InternalError(err)
		}
		q := dto.QuestionnaireFromModel(user, now)
		if photo, err := s.photoRepo.FindProfilePhoto(ctx, id); err == nil {
			q.PhotoURL = photo.Path
		}
		responses = append(responses, q)
	}
	if len(responses) == 0 {
		return nil, apperrors.ErrNoQuestionnaires
	}
	return responses, nil
}
