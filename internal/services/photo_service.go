package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/internal/storage"
	"sabytin_backend/pkg/apperrors"
)

type PhotoService interface {
	Upload(ctx context.Context, userID, filename, contentType string, size int64, reader io.Reader) (*dto.PhotoResponse, error)
	SetProfile(ctx context.Context, userID, photoID string) (*dto.PhotoResponse, error)
	ProfilePhoto(ctx context.Context, userID string) (*dto.PhotoResponse, error)
	List(ctx context.Context, userID string) ([]dto.PhotoResponse, error)
	Delete(ctx context.Context, userID, photoID string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

type PhotoServiceImpl struct {
	photoRepo    repositories.PhotoRepository
	store        storage.Storage
	maxSize      int64
	allowedTypes map[string]bool
}

func NewPhotoService(photoRepo repositories.PhotoRepository, store storage.Storage, maxSize int64, allowedTypes []string) PhotoService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &PhotoServiceImpl{
		photoRepo:    photoRepo,
		store:        store,
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

// Upload сохраняет файл в хранилище и запись о нем в БД.
// Первое загруженное фото автоматически становится фото профиля.
func (s *PhotoServiceImpl) Upload(ctx context.Context, userID, filename, contentType string, size int64, reader io.Reader) (*dto.PhotoResponse, error) {
	if size > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if !s.allowedTypes[contentType] {
		return nil, apperrors.ErrInvalidFileType
	}

	path := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), filepath.Ext(filename))
	if err := s.store.Save(ctx, path, reader, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	existing, err := s.photoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	photo := &models.Photo{
		UserID:      userID,
		Path:        path,
		ContentType: contentType,
		Size:        size,
		IsProfile:   len(existing) == 0,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		// Запись не создана, файл больше никому не нужен
		_ = s.store.Delete(ctx, path)
		return nil, apperrors.InternalError(err)
	}

	return s.toResponse(ctx, photo)
}

// SetProfile делает фото главным
func (s *PhotoServiceImpl) SetProfile(ctx context.Context, userID, photoID string) (*dto.PhotoResponse, error) {
	if err := s.photoRepo.SetProfile(ctx, userID, photoID); err != nil {
		if err == repositories.ErrPhotoNotFound {
			return nil, apperrors.NewNotFoundError("photos", "Photo not found")
		}
		return nil, apperrors.InternalError(err)
	}
	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(ctx, photo)
}

// ProfilePhoto возвращает текущее фото профиля
func (s *PhotoServiceImpl) ProfilePhoto(ctx context.Context, userID string) (*dto.PhotoResponse, error) {
	photo, err := s.photoRepo.FindProfilePhoto(ctx, userID)
	if err != nil {
		if err == repositories.ErrProfilePhotoNotFound {
			return nil, apperrors.ErrNoProfilePhoto
		}
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(ctx, photo)
}

func (s *PhotoServiceImpl) List(ctx context.Context, userID string) ([]dto.PhotoResponse, error) {
	photos, err := s.photoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.PhotoResponse, 0, len(photos))
	for i := range photos {
		resp, err := s.toResponse(ctx, &photos[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// Delete удаляет фото вместе с файлом. Чужие фото удалять нельзя.
func (s *PhotoServiceImpl) Delete(ctx context.Context, userID, photoID string) error {
	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		if err == repositories.ErrPhotoNotFound {
			return apperrors.NewNotFoundError("photos", "Photo not found")
		}
		return apperrors.InternalError(err)
	}
	if photo.UserID != userID {
		return apperrors.NewForbiddenError("You do not have permission to delete this photo")
	}

	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.store.Delete(ctx, photo.Path); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Open отдает содержимое файла для ручной раздачи
func (s *PhotoServiceImpl) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	reader, err := s.store.Get(ctx, path)
	if err != nil {
		return nil, apperrors.NewNotFoundError("photos", "File not found")
	}
	return reader, nil
}

func (s *PhotoServiceImpl) toResponse(ctx context.Context, photo *models.Photo) (*dto.PhotoResponse, error) {
	url, err := s.store.GetURL(ctx, photo.Path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.PhotoResponseFromModel(photo, url), nil
}
