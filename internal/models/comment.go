package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelatedType — к какой сущности привязан комментарий/уведомление.
// Ровно один родитель: либо проект, либо задача.
type RelatedType string

const (
	RelatedProject RelatedType = "project"
	RelatedTask    RelatedType = "task"
)

func ValidRelatedType(t RelatedType) bool {
	return t == RelatedProject || t == RelatedTask
}

type Comment struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`

	AuthorID   string `gorm:"type:uuid;not null" json:"author_id"`
	AuthorName string `gorm:"-" json:"author_name,omitempty"`

	RelatedID   string      `gorm:"size:255;not null;index" json:"related_id"`
	RelatedType RelatedType `gorm:"type:varchar(50);not null" json:"related_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
