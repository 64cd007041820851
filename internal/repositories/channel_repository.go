package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sabytin_backend/internal/models"
)

var (
	ErrChannelNotFound  = errors.New("channel not found")
	ErrAlreadyInChannel = errors.New("user already in the channel")
	ErrNotInChannel     = errors.New("user is not in the channel")
)

type ChannelRepository interface {
	FindByID(ctx context.Context, id string) (*models.Channel, error)
	Create(ctx context.Context, channel *models.Channel) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.Channel, error)
	ListForUser(ctx context.Context, userID string) ([]models.Channel, error)
	Join(ctx context.Context, channelID, userID string) error
	Leave(ctx context.Context, channelID, userID string) error
	MemberIDs(ctx context.Context, channelID string) ([]string, error)
}

type ChannelRepositoryImpl struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &ChannelRepositoryImpl{db: db}
}

func (r *ChannelRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Channel, error) {
	var channel models.Channel
	err := r.db.WithContext(ctx).First(&channel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepositoryImpl) Create(ctx context.Context, channel *models.Channel) error {
	return r.db.WithContext(ctx).Create(channel).Error
}

func (r *ChannelRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("channel_id = ?", id).
			Delete(&models.ChannelUser{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Channel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrChannelNotFound
		}
		return nil
	})
}

func (r *ChannelRepositoryImpl) ListAll(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&channels).Error
	return channels, err
}

func (r *ChannelRepositoryImpl) ListForUser(ctx context.Context, userID string) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.WithContext(ctx).
		Joins("JOIN channel_users cu ON cu.channel_id = channels.id").
		Where("cu.user_id = ?", userID).
		Order("channels.created_at ASC").
		Find(&channels).Error
	return channels, err
}

func (r *ChannelRepositoryImpl) Join(ctx context.Context, channelID, userID string) error {
	link := models.ChannelUser{ChannelID: channelID, UserID: userID}
	err := r.db.WithContext(ctx).Create(&link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyInChannel
	}
	return err
}

func (r *ChannelRepositoryImpl) Leave(ctx context.Context, channelID, userID string) error {
	result := r.db.WithContext(ctx).Where("channel_id = ? AND user_id = ?", channelID, userID).
		Delete(&models.ChannelUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotInChannel
	}
	return nil
}

func (r *ChannelRepositoryImpl) MemberIDs(ctx context.Context, channelID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.ChannelUser{}).
		Where("channel_id = ?", channelID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
