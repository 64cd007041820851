package services

import (
	"context"

	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

type FilterService interface {
	Create(ctx context.Context, userID string, req *dto.CreateFilterRequest) (*dto.FilterResponse, error)
	Patch(ctx context.Context, userID string, req *dto.PatchFilterRequest) (*dto.FilterResponse, error)
	Get(ctx context.Context, userID string) (*dto.FilterResponse, error)
}

type FilterServiceImpl struct {
	filterRepo repositories.FilterRepository
}

func NewFilterService(filterRepo repositories.FilterRepository) FilterService {
	return &FilterServiceImpl{filterRepo: filterRepo}
}

// Create сохраняет фильтры подбора. Повторный вызов отклоняется:
// для изменения существует Patch.
func (s *FilterServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateFilterRequest) (*dto.FilterResponse, error) {
	if err := validateRanges(req.AgeMin, req.AgeMax, req.HeightMin, req.HeightMax); err != nil {
		return nil, err
	}

	interestIDs, err := s.resolveInterests(ctx, req.Interests)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	filter := &models.Filter{
		UserID:          userID,
		AgeMin:          req.AgeMin,
		AgeMax:          req.AgeMax,
		HeightMin:       req.HeightMin,
		HeightMax:       req.HeightMax,
		CommunicationID: req.CommunicationID,
		TargetID:        req.TargetID,
		GenderID:        req.GenderID,
		City:            req.City,
	}
	if err := s.filterRepo.Create(ctx, filter, interestIDs); err != nil {
		if err == repositories.ErrFilterAlreadyExists {
			return nil, apperrors.ErrConflict(err, "algorithm", "Filters already exist, use patch instead")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildResponse(ctx, filter)
}

// Patch частично обновляет фильтры: nil-поля сохраняют прежние
// значения, присланный список интересов заменяет набор целиком,
// пустой список очищает его.
func (s *FilterServiceImpl) Patch(ctx context.Context, userID string, req *dto.PatchFilterRequest) (*dto.FilterResponse, error) {
	existing, err := s.filterRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == repositories.ErrFilterNotFound {
			return nil, apperrors.NewNotFoundError("algorithm", "Filters not found")
		}
		return nil, apperrors.InternalError(err)
	}

	merged := mergeFilter(existing, req)
	if err := validateRanges(merged.AgeMin, merged.AgeMax, merged.HeightMin, merged.HeightMax); err != nil {
		return nil, err
	}

	var interestIDs []string
	if req.Interests != nil {
		interestIDs, err = s.resolveInterests(ctx, req.Interests)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := s.filterRepo.Update(ctx, merged, interestIDs); err != nil {
		if err == repositories.ErrFilterNotFound {
			return nil, apperrors.NewNotFoundError("algorithm", "Filters not found")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildResponse(ctx, merged)
}

func (s *FilterServiceImpl) Get(ctx context.Context, userID string) (*dto.FilterResponse, error) {
	filter, err := s.filterRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == repositories.ErrFilterNotFound {
			return nil, apperrors.NewNotFoundError("algorithm", "Filters not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return s.buildResponse(ctx, filter)
}

// mergeFilter накладывает непустые поля патча на существующий фильтр
func mergeFilter(existing *models.Filter, req *dto.PatchFilterRequest) *models.Filter {
	merged := *existing
	if req.AgeMin != nil {
		merged.AgeMin = req.AgeMin
	}
	if req.AgeMax != nil {
		merged.AgeMax = req.AgeMax
	}
	if req.HeightMin != nil {
		merged.HeightMin = req.HeightMin
	}
	if req.HeightMax != nil {
		merged.HeightMax = req.HeightMax
	}
	if req.CommunicationID != nil {
		merged.CommunicationID = req.CommunicationID
	}
	if req.TargetID != nil {
		merged.TargetID = req.TargetID
	}
	if req.GenderID != nil {
		merged.GenderID = req.GenderID
	}
	if req.City != nil {
		merged.City = req.City
	}
	return &merged
}

func validateRanges(ageMin, ageMax, heightMin, heightMax *int) error {
	if ageMin != nil && ageMax != nil && *ageMin > *ageMax {
		return apperrors.ValidationError(map[string]string{"age_min": "must not exceed age_max"})
	}
	if heightMin != nil && heightMax != nil && *heightMin > *heightMax {
		return apperrors.ValidationError(map[string]string{"height_min": "must not exceed height_max"})
	}
	return nil
}

func (s *FilterServiceImpl) resolveInterests(ctx context.Context, titles []string) ([]string, error) {
	ids := make([]string, 0, len(titles))
	for _, title := range titles {
		interest, err := s.filterRepo.FindOrCreateInterest(ctx, title)
		if err != nil {
			return nil, err
		}
		ids = append(ids, interest.ID)
	}
	return ids, nil
}

func (s *FilterServiceImpl) buildResponse(ctx context.Context, filter *models.Filter) (*dto.FilterResponse, error) {
	titles, err := s.filterRepo.ListInterestTitles(ctx, filter.UserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.FilterResponseFromModel(filter, titles), nil
}
