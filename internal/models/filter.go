package models

// Filter - сохраненные критерии поиска, один-к-одному с User.
// Числовые диапазоны и категориальные предпочтения опциональны:
// nil означает "критерий не задан" и не участвует в подборе.
type Filter struct {
	BaseModel
	UserID          string  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	AgeMin          *int    `json:"age_min"`
	AgeMax          *int    `json:"age_max"`
	HeightMin       *int    `json:"height_min"`
	HeightMax       *int    `json:"height_max"`
	CommunicationID *int    `json:"communication_id"`
	TargetID        *int    `json:"target_id"`
	GenderID        *int    `json:"gender_id"`
	City            *string `json:"city"`
}

// Interest - справочник интересов
type Interest struct {
	BaseModel
	Title string `gorm:"uniqueIndex;not null" json:"title"`
}

// UserInterest - интересы, указанные пользователем о себе
type UserInterest struct {
	BaseModel
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:idx_user_interest" json:"user_id"`
	InterestID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_interest" json:"interest_id"`
}

// FilterInterest - интересы, которые пользователь ищет в других.
// При обновлении фильтров набор заменяется целиком (delete + insert).
type FilterInterest struct {
	BaseModel
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:idx_filter_interest" json:"user_id"`
	InterestID string `gorm:"type:uuid;not null;uniqueIndex:idx_filter_interest" json:"interest_id"`
}
