package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sabytin_backend/internal/models"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrAlreadyJoined  = errors.New("user already joined the event")
	ErrEventIsFull    = errors.New("event is full")
	ErrNotParticipant = errors.New("user is not a participant")
)

type EventRepository interface {
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event, tagTitles []string) error
	Update(ctx context.Context, event *models.Event, tagTitles []string) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context, limit, offset int) ([]models.Event, error)
	ListByCreator(ctx context.Context, creatorID string) ([]models.Event, error)
	Join(ctx context.Context, eventID, userID string) error
	Leave(ctx context.Context, eventID, userID string) error
	ParticipantIDs(ctx context.Context, eventID string) ([]string, error)
	CountParticipants(ctx context.Context, eventID string) (int64, error)
}

type EventRepositoryImpl struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Preload("Tags").First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// Create сохраняет событие и привязывает теги, создавая отсутствующие
// в справочнике. Все в одной транзакции.
func (r *EventRepositoryImpl) Create(ctx context.Context, event *models.Event, tagTitles []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, tagTitles)
		if err != nil {
			return err
		}
		event.Tags = tags
		return tx.Create(event).Error
	})
}

func (r *EventRepositoryImpl) Update(ctx context.Context, event *models.Event, tagTitles []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Event{}).
			Where("id = ?", event.ID).
			Select("title", "description", "place", "starts_at",
				"users_limit", "online", "images", "updated_at").
			Updates(event)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}
		if tagTitles == nil {
			return nil
		}
		tags, err := resolveTags(tx, tagTitles)
		if err != nil {
			return err
		}
		return tx.Model(event).Association("Tags").Replace(tags)
	})
}

func resolveTags(tx *gorm.DB, titles []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(titles))
	for _, title := range titles {
		var tag models.Tag
		err := tx.Where("title = ?", title).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Title: title}
			err = tx.Create(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).
			Delete(&models.EventUser{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Event{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}
		return nil
	})
}

func (r *EventRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]models.Event, error) {
	var events []models.Event
	query := r.db.WithContext(ctx).Preload("Tags").Order("starts_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&events).Error
	return events, err
}

func (r *EventRepositoryImpl) ListByCreator(ctx context.Context, creatorID string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Preload("Tags").
		Where("creator_id = ?", creatorID).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

// Join записывает пользователя на событие. Лимит участников проверяется
// в той же транзакции, что и вставка.
func (r *EventRepositoryImpl) Join(ctx context.Context, eventID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if event.UsersLimit != nil {
			var count int64
			if err := tx.Model(&models.EventUser{}).
				Where("event_id = ?", eventID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*event.UsersLimit) {
				return ErrEventIsFull
			}
		}

		link := models.EventUser{EventID: eventID, UserID: userID}
		if err := tx.Create(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyJoined
			}
			return err
		}
		return nil
	})
}

func (r *EventRepositoryImpl) Leave(ctx context.Context, eventID, userID string) error {
	result := r.db.WithContext(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotParticipant
	}
	return nil
}

func (r *EventRepositoryImpl) ParticipantIDs(ctx context.Context, eventID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.EventUser{}).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *EventRepositoryImpl) CountParticipants(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventUser{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
