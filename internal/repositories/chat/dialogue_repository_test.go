package chat_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	chatmodels "sabytin_backend/internal/models/chat"
	chatrepo "sabytin_backend/internal/repositories/chat"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&chatmodels.Dialogue{}, &chatmodels.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestCreateIfAbsentIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := chatrepo.NewDialogueRepository(db)
	ctx := context.Background()

	alice := uuid.NewString()
	bob := uuid.NewString()

	first, created, err := repo.CreateIfAbsent(ctx, nil, alice, bob)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, first)

	// повторный вызов в обратном порядке аргументов попадает в тот же диалог
	second, created, err := repo.CreateIfAbsent(ctx, nil, bob, alice)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&chatmodels.Dialogue{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindByPairOrderIndependent(t *testing.T) {
	db := setupTestDB(t)
	repo := chatrepo.NewDialogueRepository(db)
	ctx := context.Background()

	alice := uuid.NewString()
	bob := uuid.NewString()

	dialogue, _, err := repo.CreateIfAbsent(ctx, nil, alice, bob)
	require.NoError(t, err)

	found, err := repo.FindByPair(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, dialogue.ID, found.ID)

	found, err = repo.FindByPair(ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, dialogue.ID, found.ID)

	_, err = repo.FindByPair(ctx, alice, uuid.NewString())
	assert.ErrorIs(t, err, chatrepo.ErrDialogueNotFound)
}

func TestListForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := chatrepo.NewDialogueRepository(db)
	ctx := context.Background()

	alice := uuid.NewString()
	bob := uuid.NewString()
	carol := uuid.NewString()

	_, _, err := repo.CreateIfAbsent(ctx, nil, alice, bob)
	require.NoError(t, err)
	_, _, err = repo.CreateIfAbsent(ctx, nil, carol, alice)
	require.NoError(t, err)

	dialogues, err := repo.ListForUser(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, dialogues, 2)

	dialogues, err = repo.ListForUser(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, dialogues, 1)
	assert.True(t, dialogues[0].HasParticipant(bob))
}

func TestUpdateLastMessage(t *testing.T) {
	db := setupTestDB(t)
	repo := chatrepo.NewDialogueRepository(db)
	ctx := context.Background()

	dialogue, _, err := repo.CreateIfAbsent(ctx, nil, uuid.NewString(), uuid.NewString())
	require.NoError(t, err)

	messageID := uuid.NewString()
	require.NoError(t, repo.UpdateLastMessage(ctx, dialogue.ID, messageID))

	found, err := repo.FindByID(ctx, dialogue.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastMessageID)
	assert.Equal(t, messageID, *found.LastMessageID)
}

func TestMessageLifecycle(t *testing.T) {
	db := setupTestDB(t)
	dialogues := chatrepo.NewDialogueRepository(db)
	messages := chatrepo.NewMessageRepository(db)
	ctx := context.Background()

	alice := uuid.NewString()
	dialogue, _, err := dialogues.CreateIfAbsent(ctx, nil, alice, uuid.NewString())
	require.NoError(t, err)

	msg := &chatmodels.Message{DialogueID: dialogue.ID, UserID: alice, Text: "hello"}
	require.NoError(t, messages.Create(ctx, msg))

	found, err := messages.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Text)
	assert.False(t, found.Edited)

	require.NoError(t, messages.UpdateText(ctx, msg.ID, "hello, edited"))
	found, err = messages.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello, edited", found.Text)
	assert.True(t, found.Edited)

	require.NoError(t, messages.SoftDelete(ctx, msg.ID))
	_, err = messages.FindByID(ctx, msg.ID)
	assert.ErrorIs(t, err, chatrepo.ErrMessageNotFound)

	// удаленное сообщение не попадает в выдачу диалога
	page, err := messages.ListByDialogue(ctx, dialogue.ID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, page)
}
