package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleManager  UserRole = "project_manager"
)

type User struct {
	ID           string   `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	Name         string   `gorm:"size:255;not null" json:"name"`
	Role         UserRole `gorm:"type:varchar(50);not null" json:"role"`

	// профиль
	Phone      string `gorm:"size:20" json:"phone,omitempty"`
	Department string `gorm:"size:255" json:"department,omitempty"`
	Bio        string `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL  string `gorm:"type:text" json:"avatar_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
