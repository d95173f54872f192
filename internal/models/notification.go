package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotifyTaskAssigned     NotificationType = "task_assigned"
	NotifyTaskCompleted    NotificationType = "task_completed"
	NotifyTaskApproved     NotificationType = "task_approved"
	NotifyProjectCreated   NotificationType = "project_created"
	NotifyDeadlineReminder NotificationType = "deadline_reminder"
)

func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotifyTaskAssigned, NotifyTaskCompleted, NotifyTaskApproved,
		NotifyProjectCreated, NotifyDeadlineReminder:
		return true
	}
	return false
}

type Notification struct {
	ID     string           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Type   NotificationType `gorm:"type:varchar(50);not null" json:"type"`

	Title   string `gorm:"size:500;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`

	// необязательная ссылка на задачу или проект
	RelatedID   string      `gorm:"size:255" json:"related_id,omitempty"`
	RelatedType RelatedType `gorm:"type:varchar(50)" json:"related_type,omitempty"`

	IsRead bool `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
