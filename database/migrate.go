package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sabytin_backend/internal/config"
	"sabytin_backend/internal/models"
	chatmodels "sabytin_backend/internal/models/chat"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с DSN из конфигурации.
// TranslateError превращает ошибки драйвера в gorm.ErrDuplicatedKey
// и прочие, на которые опираются репозитории.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Reaction{},
		&models.Filter{},
		&models.Interest{},
		&models.UserInterest{},
		&models.FilterInterest{},
		&models.Event{},
		&models.Tag{},
		&models.EventUser{},
		&models.Channel{},
		&models.ChannelUser{},
		&models.Photo{},
		&chatmodels.Dialogue{},
		&chatmodels.Message{},
	)
}
