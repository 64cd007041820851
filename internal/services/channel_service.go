package services

import (
	"context"

	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

type ChannelService interface {
	Create(ctx context.Context, req *dto.CreateChannelRequest) (*dto.ChannelResponse, error)
	List(ctx context.Context) ([]dto.ChannelResponse, error)
	ListForUser(ctx context.Context, userID string) ([]dto.ChannelResponse, error)
	Join(ctx context.Context, userID, channelID string) error
	Leave(ctx context.Context, userID, channelID string) error
}

type ChannelServiceImpl struct {
	channelRepo repositories.ChannelRepository
}

func NewChannelService(channelRepo repositories.ChannelRepository) ChannelService {
	return &ChannelServiceImpl{channelRepo: channelRepo}
}

func (s *ChannelServiceImpl) Create(ctx context.Context, req *dto.CreateChannelRequest) (*dto.ChannelResponse, error) {
	channel := &models.Channel{Title: req.Title}
	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.ChannelResponseFromModel(channel), nil
}

func (s *ChannelServiceImpl) List(ctx context.Context) ([]dto.ChannelResponse, error) {
	channels, err := s.channelRepo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return channelResponses(channels), nil
}

func (s *ChannelServiceImpl) ListForUser(ctx context.Context, userID string) ([]dto.ChannelResponse, error) {
	channels, err := s.channelRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return channelResponses(channels), nil
}

func (s *ChannelServiceImpl) Join(ctx context.Context, userID, channelID string) error {
	if _, err := s.channelRepo.FindByID(ctx, channelID); err != nil {
		if err == repositories.ErrChannelNotFound {
			return apperrors.NewNotFoundError("channels", "Channel not found")
		}
		return apperrors.InternalError(err)
	}
	err := s.channelRepo.Join(ctx, channelID, userID)
	switch err {
	case nil:
		return nil
	case repositories.ErrAlreadyInChannel:
		return apperrors.ErrConflict(err, "channels", "Already joined the channel")
	default:
		return apperrors.InternalError(err)
	}
}

func (s *ChannelServiceImpl) Leave(ctx context.Context, userID, channelID string) error {
	err := s.channelRepo.Leave(ctx, channelID, userID)
	switch err {
	case nil:
		return nil
	case repositories.ErrNotInChannel:
		return apperrors.NewBadRequestError("Not a member of the channel")
	default:
		return apperrors.InternalError(err)
	}
}

func channelResponses(channels []models.Channel) []dto.ChannelResponse {
	responses := make([]dto.ChannelResponse, 0, len(channels))
	for i := range channels {
		responses = append(responses, *dto.ChannelResponseFromModel(&channels[i]))
	}
	return responses
}
