package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	Username     string    `gorm:"type:varchar(80);unique_index;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(120);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IdentityID satisfies auth.Identity.
func (u User) IdentityID() uint {
	return u.ID
}

type Clip struct {
	ID         uint      `gorm:"primary_key" json:"id"`
	Title      string    `gorm:"type:varchar(100);not null" json:"title"`
	Game       string    `gorm:"type:varchar(100);not null" json:"game"`
	VideoURL   string    `gorm:"type:varchar(500);not null" json:"video_url"`
	PublicID   string    `gorm:"type:varchar(200);not null" json:"public_id"`
	UploadDate time.Time `json:"upload_date"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `json:"-"`
}
