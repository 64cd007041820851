package models

type Channel struct {
	BaseModel
	Title string `gorm:"not null" json:"title"`
}

// ChannelUser - членство пользователя в канале
type ChannelUser struct {
	BaseModel
	ChannelID string `gorm:"type:uuid;not null;uniqueIndex:idx_channel_user" json:"channel_id"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_channel_user" json:"user_id"`
}
