package models

// Photo - метаданные загруженной фотографии.
// Содержимое лежит в storage.Storage по Path, в БД только запись.
type Photo struct {
	BaseModel
	UserID      string `gorm:"type:uuid;not null;index" json:"user_id"`
	Path        string `gorm:"not null" json:"-"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	IsProfile   bool   `gorm:"default:false;index" json:"is_profile"`
}
