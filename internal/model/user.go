package model

import "time"

type User struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Username             string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	PasswordHash         string    `gorm:"size:255;not null" json:"-"`
	Theme                string    `gorm:"size:32;not null;default:light" json:"theme"`
	Language             string    `gorm:"size:16;not null;default:en" json:"language"`
	NotificationsEnabled bool      `gorm:"not null;default:true" json:"notifications_enabled"`
	Incognito            bool      `gorm:"not null;default:false" json:"incognito"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
