package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dialogue - неупорядоченная пара пользователей, созданная при взаимном лайке.
// Пара хранится нормализованной (UserAID < UserBID), уникальный индекс на
// (user_a_id, user_b_id) дает "ровно один диалог на пару" без гонки
// read-then-write: конкурирующая вставка упирается в constraint.
type Dialogue struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	UserAID       string `gorm:"type:uuid;not null;uniqueIndex:idx_dialogue_pair;index"`
	UserBID       string `gorm:"type:uuid;not null;uniqueIndex:idx_dialogue_pair;index"`
	LastMessageID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	Messages []Message `gorm:"foreignKey:DialogueID"`
}

func (d *Dialogue) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// HasParticipant сообщает, входит ли userID в пару диалога
func (d *Dialogue) HasParticipant(userID string) bool {
	return d.UserAID == userID || d.UserBID == userID
}

// ParticipantIDs возвращает обоих участников
func (d *Dialogue) ParticipantIDs() []string {
	return []string{d.UserAID, d.UserBID}
}

// NormalizePair приводит пару к каноническому порядку хранения
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
