package services

import (
	"context"
	"time"

	"sabytin_backend/internal/repositories"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

type UserService interface {
	GetAllUsers(ctx context.Context, userID string, limit, offset int) ([]dto.QuestionnaireResponse, error)
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteProfile(ctx context.Context, userID string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetAllUsers возвращает все анкеты кроме собственной, без ранжирования
func (s *UserServiceImpl) GetAllUsers(ctx context.Context, userID string, limit, offset int) ([]dto.QuestionnaireResponse, error) {
	users, err := s.userRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	responses := make([]dto.QuestionnaireResponse, 0, len(users))
	for i := range users {
		if users[i].ID == userID {
			continue
		}
		responses = append(responses, dto.QuestionnaireFromModel(&users[i], now))
	}
	if len(responses) == 0 {
		return nil, apperrors.ErrNoQuestionnaires
	}
	return responses, nil
}

// GetUser возвращает анкету по идентификатору
func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.UserResponseFromModel(user, time.Now()), nil
}

// UpdateProfile частично обновляет анкету пользователя
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.NewNotFoundError("users", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Position != nil {
		user.Position = *req.Position
	}
	if req.Height != nil {
		user.Height = *req.Height
	}
	if req.GenderID != nil {
		user.GenderID = *req.GenderID
	}
	if req.TargetID != nil {
		user.TargetID = *req.TargetID
	}
	if req.CommunicationID != nil {
		user.CommunicationID = *req.CommunicationID
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.UserResponseFromModel(user, time.Now()), nil
}

// DeleteProfile мягко удаляет аккаунт
func (s *UserServiceImpl) DeleteProfile(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.NewNotFoundError("users", "User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
