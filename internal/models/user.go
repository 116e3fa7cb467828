package models

import "time"

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Name            string     `gorm:"uniqueIndex;not null" json:"name"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	ProfileImageURL string     `json:"profile_image_url,omitempty"`
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	Role            string     `gorm:"not null;default:ROLE_USER" json:"role"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}
