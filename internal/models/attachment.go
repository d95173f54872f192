package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxAttachmentSize — лимит размера файла; ровно 10 MiB ещё допустимо.
const MaxAttachmentSize = 10 * 1024 * 1024

type FileAttachment struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	FileName string `gorm:"size:500;not null" json:"file_name"`
	FileURL  string `gorm:"type:text;not null" json:"file_url"`
	FileSize int64  `gorm:"not null" json:"file_size"`
	MimeType string `gorm:"size:255;not null" json:"mime_type"`

	TaskID string `gorm:"type:uuid;not null;index" json:"task_id"`

	UploadedBy     string `gorm:"type:uuid;not null" json:"uploaded_by"`
	UploadedByName string `gorm:"-" json:"uploaded_by_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *FileAttachment) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
