package services

import (
	"context"

	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

type EventService interface {
	Create(ctx context.Context, creatorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	Get(ctx context.Context, eventID string) (*dto.EventResponse, error)
	List(ctx context.Context, limit, offset int) ([]dto.EventResponse, error)
	Update(ctx context.Context, userID, eventID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, userID, eventID string) error
	Join(ctx context.Context, userID, eventID string) error
	Leave(ctx context.Context, userID, eventID string) error
}

type EventServiceImpl struct {
	eventRepo repositories.EventRepository
}

func NewEventService(eventRepo repositories.EventRepository) EventService {
	return &EventServiceImpl{eventRepo: eventRepo}
}

func (s *EventServiceImpl) Create(ctx context.Context, creatorID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Place:       req.Place,
		StartsAt:    req.StartsAt,
		CreatorID:   creatorID,
		UsersLimit:  req.UsersLimit,
		Online:      req.Online,
	}
	event.SetImages(req.Images)

	if err := s.eventRepo.Create(ctx, event, req.Tags); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.EventResponseFromModel(event, 0), nil
}

func (s *EventServiceImpl) Get(ctx context.Context, eventID string) (*dto.EventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if err == repositories.ErrEventNotFound {
			return nil, apperrors.NewNotFoundError("events", "Event not found")
		}
		return nil, apperrors.InternalError(err)
	}
	count, err := s.eventRepo.CountParticipants(ctx, eventID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.EventResponseFromModel(event, count), nil
}

func (s *EventServiceImpl) List(ctx context.Context, limit, offset int) ([]dto.EventResponse, error) {
	events, err := s.eventRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		count, err := s.eventRepo.CountParticipants(ctx, events[i].ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		responses = append(responses, *dto.EventResponseFromModel(&events[i], count))
	}
	return responses, nil
}

// Update разрешен только создателю события
func (s *EventServiceImpl) Update(ctx context.Context, userID, eventID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if err == repositories.ErrEventNotFound {
			return nil, apperrors.NewNotFoundError("events", "Event not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if event.CreatorID != userID {
		return nil, apperrors.NewForbiddenError("Only the creator can modify the event")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Place != nil {
		event.Place = *req.Place
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.UsersLimit != nil {
		event.UsersLimit = req.UsersLimit
	}
	if req.Online != nil {
		event.Online = *req.Online
	}
	if req.Images != nil {
		event.SetImages(req.Images)
	}

	if err := s.eventRepo.Update(ctx, event, req.Tags); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.Get(ctx, eventID)
}

// Delete разрешен только создателю события
func (s *EventServiceImpl) Delete(ctx context.Context, userID, eventID string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if err == repositories.ErrEventNotFound {
			return apperrors.NewNotFoundError("events", "Event not found")
		}
		return apperrors.InternalError(err)
	}
	if event.CreatorID != userID {
		return apperrors.NewForbiddenError("Only the creator can delete the event")
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *EventServiceImpl) Join(ctx context.Context, userID, eventID string) error {
	err := s.eventRepo.Join(ctx, eventID, userID)
	switch err {
	case nil:
		return nil
	case repositories.ErrEventNotFound:
		return apperrors.NewNotFoundError("events", "Event not found")
	case repositories.ErrEventIsFull:
		return apperrors.ErrEventFull
	case repositories.ErrAlreadyJoined:
		return apperrors.ErrConflict(err, "events", "Already joined the event")
	default:
		return apperrors.InternalError(err)
	}
}

func (s *EventServiceImpl) Leave(ctx context.Context, userID, eventID string) error {
	err := s.eventRepo.Leave(ctx, eventID, userID)
	switch err {
	case nil:
		return nil
	case repositories.ErrNotParticipant:
		return apperrors.NewBadRequestError("Not a participant of the event")
	default:
		return apperrors.InternalError(err)
	}
}
