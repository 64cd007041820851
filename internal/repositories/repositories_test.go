package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sabytin_backend/internal/models"
	"sabytin_backend/internal/repositories"
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

	err = db.AutoMigrate(
		&models.User{},
		&models.Reaction{},
		&models.Filter{},
		&models.Interest{},
		&models.UserInterest{},
		&models.FilterInterest{},
		&models.Photo{},
		&models.Event{},
		&models.Tag{},
		&models.EventUser{},
		&models.Channel{},
		&models.ChannelUser{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test User",
		City:         "Almaty",
		Birthday:     time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		GenderID:     1,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestQueriesHonorContextCancel(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewUserRepository(db)

	user := createTestUser(t, db, "alice@example.com")

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, found.Email)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, context.Canceled)
}
