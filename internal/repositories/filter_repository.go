package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sabytin_backend/internal/models"
)

var (
	ErrFilterNotFound      = errors.New("filter not found")
	ErrFilterAlreadyExists = errors.New("filter already exists")
)

type FilterRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.Filter, error)
	Create(ctx context.Context, filter *models.Filter, interestIDs []string) error
	Update(ctx context.Context, filter *models.Filter, interestIDs []string) error
	ListInterestIDs(ctx context.Context, userID string) ([]string, error)
	ListInterestTitles(ctx context.Context, userID string) ([]string, error)
	FindOrCreateInterest(ctx context.Context, title string) (*models.Interest, error)
	CreateUserInterest(ctx context.Context, userID, interestID string) error
}

type FilterRepositoryImpl struct {
	db *gorm.DB
}

func NewFilterRepository(db *gorm.DB) FilterRepository {
	return &FilterRepositoryImpl{db: db}
}

func (r *FilterRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*models.Filter, error) {
	var filter models.Filter
	err := r.db.WithContext(ctx).First(&filter, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFilterNotFound
		}
		return nil, err
	}
	return &filter, nil
}

// Create сохраняет фильтр вместе с искомыми интересами в одной транзакции.
func (r *FilterRepositoryImpl) Create(ctx context.Context, filter *models.Filter, interestIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(filter).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrFilterAlreadyExists
			}
			return err
		}
		return replaceFilterInterests(tx, filter.UserID, interestIDs)
	})
}

// Update сохраняет измененный фильтр. Если interestIDs не nil, набор
// искомых интересов заменяется целиком: старые записи удаляются,
// новые вставляются в той же транзакции.
func (r *FilterRepositoryImpl) Update(ctx context.Context, filter *models.Filter, interestIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Filter{}).
			Where("user_id = ?", filter.UserID).
			Select("age_min", "age_max", "height_min", "height_max",
				"communication_id", "target_id", "gender_id", "city", "updated_at").
			Updates(filter)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrFilterNotFound
		}
		if interestIDs == nil {
			return nil
		}
		return replaceFilterInterests(tx, filter.UserID, interestIDs)
	})
}

func replaceFilterInterests(tx *gorm.DB, userID string, interestIDs []string) error {
	if err := tx.Where("user_id = ?", userID).
		Delete(&models.FilterInterest{}).Error; err != nil {
		return err
	}
	for _, interestID := range interestIDs {
		link := models.FilterInterest{UserID: userID, InterestID: interestID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *FilterRepositoryImpl) ListInterestIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.FilterInterest{}).
		Where("user_id = ?", userID).
		Pluck("interest_id", &ids).Error
	return ids, err
}

// ListInterestTitles возвращает титулы искомых интересов пользователя.
func (r *FilterRepositoryImpl) ListInterestTitles(ctx context.Context, userID string) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).Model(&models.FilterInterest{}).
		Joins("JOIN interests ON interests.id = filter_interests.interest_id").
		Where("filter_interests.user_id = ?", userID).
		Pluck("interests.title", &titles).Error
	return titles, err
}

// CreateUserInterest добавляет интерес в анкету пользователя.
// Дубликаты молча пропускаются.
func (r *FilterRepositoryImpl) CreateUserInterest(ctx context.Context, userID, interestID string) error {
	link := models.UserInterest{UserID: userID, InterestID: interestID}
	err := r.db.WithContext(ctx).Create(&link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// FindOrCreateInterest возвращает интерес из справочника, создавая
// его при первом упоминании.
func (r *FilterRepositoryImpl) FindOrCreateInterest(ctx context.Context, title string) (*models.Interest, error) {
	var interest models.Interest
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&interest).Error
	if err == nil {
		return &interest, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	interest = models.Interest{Title: title}
	if err := r.db.WithContext(ctx).Create(&interest).Error; err != nil {
		// Гонка с параллельной вставкой того же титула
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			findErr := r.db.WithContext(ctx).Where("title = ?", title).First(&interest).Error
			return &interest, findErr
		}
		return nil, err
	}
	return &interest, nil
}
