package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeLog — журнал входов; только добавление, записи не изменяются.
type TimeLog struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	UserName  string `gorm:"-" json:"user_name,omitempty"`
	UserEmail string `gorm:"-" json:"user_email,omitempty"`

	LoginTimestamp time.Time `gorm:"not null" json:"login_timestamp"`
	IPAddress      string    `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent      string    `gorm:"type:text" json:"user_agent,omitempty"`
}

func (l *TimeLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.LoginTimestamp.IsZero() {
		l.LoginTimestamp = time.Now()
	}
	return nil
}
