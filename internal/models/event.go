package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Event struct {
	BaseModel
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Place       string    `json:"place"`
	StartsAt    time.Time `json:"starts_at"`
	CreatorID   string    `gorm:"type:uuid;not null;index" json:"creator_id"`
	UsersLimit  *int      `json:"users_limit"`
	Online      bool      `gorm:"default:false" json:"online"`
	// Images - список URL картинок события
	Images datatypes.JSON `gorm:"type:jsonb" json:"images"`

	Tags []Tag `gorm:"many2many:event_tags" json:"tags"`
}

// GetImages возвращает URL картинок как slice строк
func (e *Event) GetImages() []string {
	var urls []string
	if len(e.Images) > 0 {
		_ = json.Unmarshal(e.Images, &urls)
	}
	return urls
}

// SetImages устанавливает URL картинок
func (e *Event) SetImages(urls []string) {
	data, _ := json.Marshal(urls)
	e.Images = datatypes.JSON(data)
}

type Tag struct {
	BaseModel
	Title string `gorm:"uniqueIndex;not null" json:"title"`
}

// EventUser - участие пользователя в событии
type EventUser struct {
	BaseModel
	EventID string `gorm:"type:uuid;not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:idx_event_user" json:"user_id"`
}
