package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "low"
	PriorityMedium ProjectPriority = "medium"
	PriorityHigh   ProjectPriority = "high"
)

func ValidPriority(p ProjectPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Project struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:500;not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Tags        StringList `gorm:"type:text" json:"tags"`

	// id пользователя с ролью project_manager; единственный владелец
	ProjectManager     string `gorm:"type:uuid;not null;index" json:"project_manager"`
	ProjectManagerName string `gorm:"-" json:"project_manager_name,omitempty"`

	Deadline             time.Time       `gorm:"not null" json:"deadline"`
	Priority             ProjectPriority `gorm:"type:varchar(50);not null" json:"priority"`
	ImageURL             string          `gorm:"type:text" json:"image_url,omitempty"`
	CompletionPercentage int             `gorm:"default:0" json:"completion_percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
