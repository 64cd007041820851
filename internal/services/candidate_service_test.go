package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
	"sabytin_backend/internal/services"
	"sabytin_backend/pkg/apperrors"
)

func newCandidateService(t *testing.T) (services.CandidateService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	svc := services.NewCandidateService(
		repositories.NewCandidateRepository(db),
		repositories.NewFilterRepository(db),
		repositories.NewReactionRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewPhotoRepository(db),
	)
	return svc, db
}

func TestListQuestionnairesRankedByCriteriaOverlap(t *testing.T) {
	svc, db := newCandidateService(t)
	ctx := context.Background()
	filters := repositories.NewFilterRepository(db)

	viewer := createUser(t, db, &models.User{City: "Astana"})
	full := createUser(t, db, &models.User{City: "Almaty", GenderID: 2})
	partial := createUser(t, db, &models.User{City: "Almaty", GenderID: 1})
	none := createUser(t, db, &models.User{City: "Astana", GenderID: 1})

	err := filters.Create(ctx, &models.Filter{
		UserID:   viewer.ID,
		City:     strPtr("Almaty"),
		GenderID: intPtr(2),
	}, nil)
	require.NoError(t, err)

	result, err := svc.ListQuestionnaires(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, result, 2)

	// два совпадения у full, одно у partial, ноль у none
	assert.Equal(t, full.ID, result[0].ID)
	assert.Equal(t, partial.ID, result[1].ID)
	for _, q := range result {
		assert.NotEqual(t, none.ID, q.ID)
		assert.NotEqual(t, viewer.ID, q.ID)
	}
}

func TestListQuestionnairesExcludesReacted(t *testing.T) {
	svc, db := newCandidateService(t)
	ctx := context.Background()
	filters := repositories.NewFilterRepository(db)
	reactions := repositories.NewReactionRepository(db)

	viewer := createUser(t, db, &models.User{})
	liked := createUser(t, db, &models.User{City: "Almaty"})
	disliked := createUser(t, db, &models.User{City: "Almaty"})
	fresh := createUser(t, db, &models.User{City: "Almaty"})

	err := filters.Create(ctx, &models.Filter{UserID: viewer.ID, City: strPtr("Almaty")}, nil)
	require.NoError(t, err)

	require.NoError(t, reactions.Create(ctx, &models.Reaction{FromUserID: viewer.ID, ToUserID: liked.ID, Kind: models.ReactionLike}))
	require.NoError(t, reactions.Create(ctx, &models.Reaction{FromUserID: viewer.ID, ToUserID: disliked.ID, Kind: models.ReactionDislike}))

	result, err := svc.ListQuestionnaires(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, fresh.ID, result[0].ID)
}

func TestListQuestionnairesFallbackWithoutFilter(t *testing.T) {
	svc, db := newCandidateService(t)
	ctx := context.Background()

	viewer := createUser(t, db, &models.User{})
	other := createUser(t, db, &models.User{})

	// фильтра нет, выдача уходит в запасную ветку
	result, err := svc.ListQuestionnaires(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, other.ID, result[0].ID)
}

func TestListQuestionnairesFallbackWhenNothingMatches(t *testing.T) {
	svc, db := newCandidateService(t)
	ctx := context.Background()
	filters := repositories.NewFilterRepository(db)

	viewer := createUser(t, db, &models.User{})
	other := createUser(t, db, &models.User{City: "Astana"})

	err := filters.Create(ctx, &models.Filter{UserID: viewer.ID, City: strPtr("Almaty")}, nil)
	require.NoError(t, err)

	result, err := svc.ListQuestionnaires(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, other.ID, result[0].ID)
}

func TestListQuestionnairesEmpty(t *testing.T) {
	svc, db := newCandidateService(t)
	ctx := context.Background()

	viewer := createUser(t, db, &models.User{})

	_, err := svc.ListQuestionnaires(ctx, viewer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNoQuestionnaires)
}

func TestListQuestionnairesAgeRange(t *testing.T) {
	svc, db := newCandidateService(t)
	ctx := context.Background()
	filters := repositories.NewFilterRepository(db)

	now := time.Now()
	viewer := createUser(t, db, &models.User{})
	tooYoung := createUser(t, db, &models.User{Birthday: now.AddDate(-25, 0, 30)})
	atMin := createUser(t, db, &models.User{Birthday: now.AddDate(-25, 0, -30)})
	atMax := createUser(t, db, &models.User{Birthday: now.AddDate(-30, 0, -30)})
	tooOld := createUser(t, db, &models.User{Birthday: now.AddDate(-31, 0, -30)})

	err := filters.Create(ctx, &models.Filter{
		UserID: viewer.ID,
		AgeMin: intPtr(25),
		AgeMax: intPtr(30),
	}, nil)
	require.NoError(t, err)

	result, err := svc.ListQuestionnaires(ctx, viewer.ID)
	require.NoError(t, err)

	ids := make([]string, 0, len(result))
	for _, q := range result {
		ids = append(ids, q.ID)
	}
	assert.ElementsMatch(t, []string{atMin.ID, atMax.ID}, ids)
	_ = tooYoung
	_ = tooOld
}

func TestListQuestionnairesSharedInterests(t *testing.T) {
	svc, db := newCandidateService(t)
	ctx := context.Background()
	filters := repositories.NewFilterRepository(db)

	viewer := createUser(t, db, &models.User{})
	hiker := createUser(t, db, &models.User{})
	reader := createUser(t, db, &models.User{})

	hiking, err := filters.FindOrCreateInterest(ctx, "hiking")
	require.NoError(t, err)
	books, err := filters.FindOrCreateInterest(ctx, "books")
	require.NoError(t, err)

	require.NoError(t, filters.CreateUserInterest(ctx, hiker.ID, hiking.ID))
	require.NoError(t, filters.CreateUserInterest(ctx, reader.ID, books.ID))

	err = filters.Create(ctx, &models.Filter{UserID: viewer.ID}, []string{hiking.ID})
	require.NoError(t, err)

	result, err := svc.ListQuestionnaires(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, hiker.ID, result[0].ID)
	_ = reader
}

func TestListQuestionnairesAttachesProfilePhoto(t *testing.T) {
	svc, db := newCandidateService(t)
	ctx := context.Background()
	photos := repositories.NewPhotoRepository(db)

	viewer := createUser(t, db, &models.User{})
	other := createUser(t, db, &models.User{})

	photo := &models.Photo{UserID: other.ID, Path: other.ID + "/avatar.jpg", IsProfile: true}
	require.NoError(t, photos.Create(ctx, photo))

	result, err := svc.ListQuestionnaires(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, photo.Path, result[0].PhotoURL)
}
