package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	DialogueID string `gorm:"type:uuid;index;not null"`
	UserID     string `gorm:"type:uuid;index;not null"`
	Text       string `gorm:"type:text;not null"`
	Edited     bool   `gorm:"default:false"`
	// Мягкое удаление: сообщение остается в истории диалога,
	// но не отдается клиентам
	DeletedAt *time.Time
	CreatedAt time.Time
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
