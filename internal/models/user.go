package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"username"`
	FirstName    string    `gorm:"type:varchar(200);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(200);not null" json:"last_name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsStaff      bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
