package models

import "time"

type User struct {
	BaseModelWithDeleted
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	City         string    `json:"city"`
	Birthday     time.Time `json:"birthday"`
	Position     string    `json:"position"`
	Height       int       `json:"height"`
	GenderID     int       `gorm:"index" json:"gender_id"`
	TargetID     int       `json:"target_id"`
	// CommunicationID - предпочитаемый формат общения (переписка, звонки, встречи)
	CommunicationID int    `json:"communication_id"`
	Bio             string `gorm:"type:text" json:"bio"`
	IsVerified      bool   `gorm:"default:false" json:"is_verified"`

	// Relations
	Filter    *Filter        `gorm:"foreignKey:UserID" json:"-"`
	Photos    []Photo        `gorm:"foreignKey:UserID" json:"-"`
	Interests []UserInterest `gorm:"foreignKey:UserID" json:"-"`
}

// Age возвращает полное число лет на момент now.
// Возраст не хранится в БД: кандидатные выборки считают его
// от birthday на каждый запрос.
func (u *User) Age(now time.Time) int {
	years := now.Year() - u.Birthday.Year()
	anniversary := u.Birthday.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
