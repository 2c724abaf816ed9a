package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectStarting   ProjectStatus = "starting"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
	ProjectOnHold     ProjectStatus = "on_hold"
)

// ValidProjectStatus reports whether s is one of the fixed status values.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectNotStarted, ProjectStarting, ProjectInProgress,
		ProjectCompleted, ProjectCancelled, ProjectOnHold:
		return true
	}
	return false
}

type Project struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	CompanyID       uint64         `gorm:"not null;index" json:"company_id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Responsible     string         `gorm:"type:varchar(255);not null" json:"responsible"`
	Engineer        *string        `gorm:"type:varchar(255)" json:"engineer"`
	CreaNumber      *string        `gorm:"type:varchar(50)" json:"crea_number"`
	StartDate       time.Time      `gorm:"not null" json:"start_date"`
	ExpectedEndDate time.Time      `gorm:"not null" json:"expected_end_date"`
	Status          ProjectStatus  `gorm:"type:varchar(20);not null;default:'not_started'" json:"status"`
	Address         string         `gorm:"type:varchar(255)" json:"address"`
	Client          string         `gorm:"type:varchar(255)" json:"client"`
	EstimatedBudget *float64       `json:"estimated_budget"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company Company           `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Logs    []ConstructionLog `gorm:"foreignKey:ProjectID" json:"logs,omitempty"`
}
