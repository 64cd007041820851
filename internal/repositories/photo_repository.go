package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sabytin_backend/internal/models"
)

var (
	ErrPhotoNotFound        = errors.New("photo not found")
	ErrProfilePhotoNotFound = errors.New("profile photo not found")
)

type PhotoRepository interface {
	FindByID(ctx context.Context, id string) (*models.Photo, error)
	Create(ctx context.Context, photo *models.Photo) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]models.Photo, error)
	FindProfilePhoto(ctx context.Context, userID string) (*models.Photo, error)
	SetProfile(ctx context.Context, userID, photoID string) error
}

type PhotoRepositoryImpl struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &PhotoRepositoryImpl{db: db}
}

func (r *PhotoRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepositoryImpl) Create(ctx context.Context, photo *models.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *PhotoRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Photo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (r *PhotoRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&photos).Error
	return photos, err
}

func (r *PhotoRepositoryImpl) FindProfilePhoto(ctx context.Context, userID string) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).First(&photo, "user_id = ? AND is_profile = ?", userID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfilePhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// SetProfile делает фото главным. Снятие старой отметки и установка
// новой идут одной транзакцией, чтобы главное фото всегда было одно.
func (r *PhotoRepositoryImpl) SetProfile(ctx context.Context, userID, photoID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		if err := tx.First(&photo, "id = ? AND user_id = ?", photoID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPhotoNotFound
			}
			return err
		}

		if err := tx.Model(&models.Photo{}).
			Where("user_id = ? AND is_profile = ?", userID, true).
			Update("is_profile", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.Photo{}).
			Where("id = ?", photoID).
			Update("is_profile", true).Error
	})
}
