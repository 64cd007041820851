package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sabytin_backend/internal/models"
	chatmodels "sabytin_backend/internal/models/chat"
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
		&chatmodels.Dialogue{},
		&chatmodels.Message{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// createUser сохраняет пользователя, заполняя обязательные поля,
// которые тест не задал сам
func createUser(t *testing.T, db *gorm.DB, user *models.User) *models.User {
	t.Helper()

	if user.Email == "" {
		user.Email = uuid.NewString() + "@example.com"
	}
	if user.Name == "" {
		user.Name = "Test User"
	}
	if user.PasswordHash == "" {
		user.PasswordHash = "hash"
	}
	if user.Birthday.IsZero() {
		user.Birthday = time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
