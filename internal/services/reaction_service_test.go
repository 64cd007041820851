package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sabytin_backend/internal/models"
	chatmodels "sabytin_backend/internal/models/chat"
	"sabytin_backend/internal/repositories"
	chatrepo "sabytin_backend/internal/repositories/chat"
	"sabytin_backend/internal/services"
	"sabytin_backend/pkg/apperrors"
)

func newReactionService(t *testing.T) (services.ReactionService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	svc := services.NewReactionService(
		db,
		repositories.NewReactionRepository(db),
		repositories.NewUserRepository(db),
		chatrepo.NewDialogueRepository(db),
	)
	return svc, db
}

func TestCreateLikeMutualCreatesOneDialogue(t *testing.T) {
	svc, db := newReactionService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{})

	result, err := svc.CreateLike(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, result.DialogueID)

	// встречный лайк дает взаимность и диалог
	result, err = svc.CreateLike(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	require.NotEmpty(t, result.DialogueID)

	var count int64
	require.NoError(t, db.Model(&chatmodels.Dialogue{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var dialogue chatmodels.Dialogue
	require.NoError(t, db.First(&dialogue, "id = ?", result.DialogueID).Error)
	assert.True(t, dialogue.HasParticipant(alice.ID))
	assert.True(t, dialogue.HasParticipant(bob.ID))
}

func TestCreateLikeSelf(t *testing.T) {
	svc, db := newReactionService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})

	_, err := svc.CreateLike(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfReaction)

	_, err = svc.CreateDislike(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfReaction)
}

func TestCreateLikeDuplicate(t *testing.T) {
	svc, db := newReactionService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{})

	_, err := svc.CreateLike(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.CreateLike(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyLiked)
}

func TestCreateLikeUnknownTarget(t *testing.T) {
	svc, db := newReactionService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})

	_, err := svc.CreateLike(ctx, alice.ID, "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestCreateDislikeDoesNotMatch(t *testing.T) {
	svc, db := newReactionService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{})

	_, err := svc.CreateLike(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// дизлайк в ответ на лайк диалога не создает
	result, err := svc.CreateDislike(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, result.Matched)

	var count int64
	require.NoError(t, db.Model(&chatmodels.Dialogue{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.CreateDislike(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDisliked)
}

func TestListLikesAndFindMatches(t *testing.T) {
	svc, db := newReactionService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{Name: "Bob"})
	carol := createUser(t, db, &models.User{Name: "Carol"})

	_, err := svc.CreateLike(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.CreateLike(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = svc.CreateLike(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	likes, err := svc.ListLikes(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 2)

	matches, err := svc.FindMatches(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, bob.ID, matches[0].ID)

	// у carol взаимности нет
	_, err = svc.FindMatches(ctx, carol.ID)
	assert.ErrorIs(t, err, apperrors.ErrNoQuestionnaires)
}

func TestListLikesEmpty(t *testing.T) {
	svc, db := newReactionService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})

	_, err := svc.ListLikes(ctx, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrNoQuestionnaires)

	_, err = svc.ListDislikes(ctx, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrNoQuestionnaires)
}

func TestClearLikes(t *testing.T) {
	svc, db := newReactionService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{})
	carol := createUser(t, db, &models.User{})

	_, err := svc.CreateLike(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.CreateLike(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = svc.CreateDislike(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	cleared, err := svc.ClearLikes(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared.Deleted)

	// дизлайки остаются на месте
	dislikes, err := svc.ListDislikes(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, dislikes, 1)

	cleared, err = svc.ClearDislikes(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared.Deleted)
}
