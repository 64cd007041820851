package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sabytin_backend/internal/models"
	chatrepo "sabytin_backend/internal/repositories/chat"
	"sabytin_backend/internal/services"
	"sabytin_backend/internal/services/dto"
	"sabytin_backend/pkg/apperrors"
)

func newChatService(t *testing.T) (services.ChatService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	svc := services.NewChatService(
		chatrepo.NewDialogueRepository(db),
		chatrepo.NewMessageRepository(db),
	)
	return svc, db
}

func createDialogue(t *testing.T, db *gorm.DB, userA, userB string) string {
	t.Helper()

	dialogue, _, err := chatrepo.NewDialogueRepository(db).CreateIfAbsent(context.Background(), nil, userA, userB)
	require.NoError(t, err)
	return dialogue.ID
}

func TestSendAndLoadMessages(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{})
	dialogueID := createDialogue(t, db, alice.ID, bob.ID)

	sent, err := svc.SendMessage(ctx, alice.ID, &dto.SendMessageRequest{
		DialogueID: dialogueID,
		Text:       "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, sent.UserID)
	assert.Equal(t, "hello", sent.Text)

	_, err = svc.SendMessage(ctx, bob.ID, &dto.SendMessageRequest{
		DialogueID: dialogueID,
		Text:       "hi",
	})
	require.NoError(t, err)

	messages, err := svc.LoadMessages(ctx, bob.ID, &dto.LoadMessagesRequest{DialogueID: dialogueID})
	require.NoError(t, err)
	require.Len(t, messages, 2)
}

func TestSendMessageOutsiderDenied(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{})
	mallory := createUser(t, db, &models.User{})
	dialogueID := createDialogue(t, db, alice.ID, bob.ID)

	_, err := svc.SendMessage(ctx, mallory.ID, &dto.SendMessageRequest{
		DialogueID: dialogueID,
		Text:       "let me in",
	})
	assert.ErrorIs(t, err, apperrors.ErrDialogueAccessDenied)

	_, err = svc.LoadMessages(ctx, mallory.ID, &dto.LoadMessagesRequest{DialogueID: dialogueID})
	assert.ErrorIs(t, err, apperrors.ErrDialogueAccessDenied)
}

func TestSendMessageUnknownDialogue(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})

	_, err := svc.SendMessage(ctx, alice.ID, &dto.SendMessageRequest{
		DialogueID: "00000000-0000-0000-0000-000000000000",
		Text:       "anyone here?",
	})
	assert.ErrorIs(t, err, apperrors.ErrDialogueNotFound)
}

func TestEditMessageOwnerOnly(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{})
	dialogueID := createDialogue(t, db, alice.ID, bob.ID)

	sent, err := svc.SendMessage(ctx, alice.ID, &dto.SendMessageRequest{
		DialogueID: dialogueID,
		Text:       "hello",
	})
	require.NoError(t, err)

	_, err = svc.EditMessage(ctx, bob.ID, sent.ID, "edited by bob")
	assert.ErrorIs(t, err, apperrors.ErrCannotModifyMessage)

	edited, err := svc.EditMessage(ctx, alice.ID, sent.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Text)
	assert.True(t, edited.Edited)
}

func TestDeleteMessageOwnerOnly(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{})
	dialogueID := createDialogue(t, db, alice.ID, bob.ID)

	sent, err := svc.SendMessage(ctx, alice.ID, &dto.SendMessageRequest{
		DialogueID: dialogueID,
		Text:       "to be removed",
	})
	require.NoError(t, err)

	err = svc.DeleteMessage(ctx, bob.ID, sent.ID)
	assert.ErrorIs(t, err, apperrors.ErrCannotModifyMessage)

	require.NoError(t, svc.DeleteMessage(ctx, alice.ID, sent.ID))

	// удаленное не читается и не правится
	messages, err := svc.LoadMessages(ctx, alice.ID, &dto.LoadMessagesRequest{DialogueID: dialogueID})
	require.NoError(t, err)
	assert.Empty(t, messages)

	_, err = svc.EditMessage(ctx, alice.ID, sent.ID, "too late")
	require.Error(t, err)
}

func TestListDialogues(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{})
	carol := createUser(t, db, &models.User{})
	createDialogue(t, db, alice.ID, bob.ID)
	createDialogue(t, db, alice.ID, carol.ID)

	dialogues, err := svc.ListDialogues(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, dialogues, 2)
	// собеседник в ответе - второй участник, не сам пользователь
	for _, d := range dialogues {
		assert.NotEqual(t, alice.ID, d.CompanionID)
	}

	dialogues, err = svc.ListDialogues(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, dialogues, 1)
	assert.Equal(t, alice.ID, dialogues[0].CompanionID)
}

func TestDialogueParticipants(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()

	alice := createUser(t, db, &models.User{})
	bob := createUser(t, db, &models.User{})
	dialogueID := createDialogue(t, db, alice.ID, bob.ID)

	participants, err := svc.DialogueParticipants(ctx, dialogueID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{alice.ID, bob.ID}, participants)

	_, err = svc.DialogueParticipants(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrDialogueNotFound)
}
