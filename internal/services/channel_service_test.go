package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
	"sabytin_backend/internal/services"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

func newChannelService(t *testing.T) (services.ChannelService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	return services.NewChannelService(repositories.NewChannelRepository(db)), db
}

func TestChannelCreateAndList(t *testing.T) {
	svc, _ := newChannelService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateChannelRequest{Title: "Hiking club"})
	require.NoError(t, err)
	assert.Equal(t, "Hiking club", created.Title)
	assert.NotEmpty(t, created.ID)

	_, err = svc.Create(ctx, &dto.CreateChannelRequest{Title: "Book club"})
	require.NoError(t, err)

	channels, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, channels, 2)
}

func TestChannelJoinLeave(t *testing.T) {
	svc, db := newChannelService(t)
	ctx := context.Background()

	member := createUser(t, db, &models.User{})

	channel, err := svc.Create(ctx, &dto.CreateChannelRequest{Title: "Hiking club"})
	require.NoError(t, err)

	require.NoError(t, svc.Join(ctx, member.ID, channel.ID))

	mine, err := svc.ListForUser(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, channel.ID, mine[0].ID)

	// повторное вступление конфликтует
	err = svc.Join(ctx, member.ID, channel.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)

	require.NoError(t, svc.Leave(ctx, member.ID, channel.ID))

	mine, err = svc.ListForUser(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	// выход без членства - 400
	err = svc.Leave(ctx, member.ID, channel.ID)
	require.Error(t, err)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestChannelJoinUnknown(t *testing.T) {
	svc, db := newChannelService(t)

	member := createUser(t, db, &models.User{})

	err := svc.Join(context.Background(), member.ID, "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}
