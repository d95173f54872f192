package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	StatusNewTask    TaskStatus = "new_task"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusApproved   TaskStatus = "approved" // терминальный
)

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case StatusNewTask, StatusInProgress, StatusCompleted, StatusApproved:
		return true
	}
	return false
}

type Task struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:500;not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Tags        StringList `gorm:"type:text" json:"tags"`

	// исполнитель; единственный, кто двигает задачу до completed
	Assignee     string `gorm:"type:uuid;not null;index" json:"assignee"`
	AssigneeName string `gorm:"-" json:"assignee_name,omitempty"`

	// слабая ссылка на проект: при удалении проекта обнуляется, задача остаётся
	ProjectID   *string `gorm:"type:uuid;index" json:"project_id,omitempty"`
	ProjectName string  `gorm:"-" json:"project_name,omitempty"`

	Deadline time.Time  `gorm:"not null" json:"deadline"`
	ImageURL string     `gorm:"type:text" json:"image_url,omitempty"`
	Status   TaskStatus `gorm:"type:varchar(50);not null;default:new_task" json:"status"`

	// менеджер, создавший задачу; единственный, кто может одобрить
	CreatedBy     string `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedByName string `gorm:"-" json:"created_by_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
