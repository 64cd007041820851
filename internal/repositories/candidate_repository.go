package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sabytin_backend/internal/models"
)

// CandidateRepository отдает множества ID пользователей, подходящих
// под отдельные критерии фильтра. Ранжирование по числу совпавших
// критериев делает сервисный слой.
type CandidateRepository interface {
	IDsByCity(ctx context.Context, city string) ([]string, error)
	IDsByGender(ctx context.Context, genderID int) ([]string, error)
	IDsByTarget(ctx context.Context, targetID int) ([]string, error)
	IDsByCommunication(ctx context.Context, communicationID int) ([]string, error)
	IDsByHeightRange(ctx context.Context, min, max *int) ([]string, error)
	IDsByAgeRange(ctx context.Context, ageMin, ageMax *int, now time.Time) ([]string, error)
	IDsBySharedInterest(ctx context.Context, userID string) ([]string, error)
	IDsAllExcept(ctx context.Context, userID string) ([]string, error)
}

type CandidateRepositoryImpl struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &CandidateRepositoryImpl{db: db}
}

func (r *CandidateRepositoryImpl) IDsByCity(ctx context.Context, city string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("city = ?", city).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CandidateRepositoryImpl) IDsByGender(ctx context.Context, genderID int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("gender_id = ?", genderID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CandidateRepositoryImpl) IDsByTarget(ctx context.Context, targetID int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("target_id = ?", targetID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CandidateRepositoryImpl) IDsByCommunication(ctx context.Context, communicationID int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("communication_id = ?", communicationID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CandidateRepositoryImpl) IDsByHeightRange(ctx context.Context, min, max *int) ([]string, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if min != nil {
		query = query.Where("height >= ?", *min)
	}
	if max != nil {
		query = query.Where("height <= ?", *max)
	}
	var ids []string
	err := query.Pluck("id", &ids).Error
	return ids, err
}

// IDsByAgeRange переводит возрастной диапазон в границы по дате
// рождения: ровно ageMax лет исполняется тем, кто родился не раньше
// now - (ageMax+1) лет. Сравнение по датам работает одинаково в
// postgres и sqlite, в отличие от date_part.
func (r *CandidateRepositoryImpl) IDsByAgeRange(ctx context.Context, ageMin, ageMax *int, now time.Time) ([]string, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if ageMin != nil {
		latestBirthday := now.AddDate(-*ageMin, 0, 0)
		query = query.Where("birthday <= ?", latestBirthday)
	}
	if ageMax != nil {
		earliestBirthday := now.AddDate(-(*ageMax + 1), 0, 0)
		query = query.Where("birthday > ?", earliestBirthday)
	}
	var ids []string
	err := query.Pluck("id", &ids).Error
	return ids, err
}

// IDsBySharedInterest возвращает пользователей, у которых среди своих
// интересов есть хотя бы один из искомых интересов userID.
func (r *CandidateRepositoryImpl) IDsBySharedInterest(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.UserInterest{}).
		Distinct("user_interests.user_id").
		Joins("JOIN filter_interests ON filter_interests.interest_id = user_interests.interest_id").
		Where("filter_interests.user_id = ?", userID).
		Pluck("user_interests.user_id", &ids).Error
	return ids, err
}

// IDsAllExcept - запасная выборка, когда ни один критерий не совпал.
func (r *CandidateRepositoryImpl) IDsAllExcept(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id <> ?", userID).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}
