package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Сообщение общего (единственного) чата.
type ChatMessage struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`

	SenderID   string   `gorm:"type:uuid;not null;index" json:"sender_id"`
	SenderName string   `gorm:"-" json:"sender_name,omitempty"`
	SenderRole UserRole `gorm:"-" json:"sender_role,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *ChatMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type ChatFileAttachment struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	FileName string `gorm:"size:500;not null" json:"file_name"`
	FileURL  string `gorm:"type:text;not null" json:"file_url"`
	FileSize int64  `gorm:"not null" json:"file_size"`
	MimeType string `gorm:"size:255;not null" json:"mime_type"`

	MessageID string `gorm:"type:uuid;not null;index" json:"message_id"`

	UploadedBy     string `gorm:"type:uuid;not null" json:"uploaded_by"`
	UploadedByName string `gorm:"-" json:"uploaded_by_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *ChatFileAttachment) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
