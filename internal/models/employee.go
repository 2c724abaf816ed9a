package models

import (
	"time"

	"gorm.io/gorm"
)

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

type Employee struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	CompanyID uint64         `gorm:"not null;index" json:"company_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string         `gorm:"type:varchar(30)" json:"phone"`
	Role      string         `gorm:"type:varchar(100);not null" json:"role"`
	DailyRate float64        `gorm:"not null" json:"daily_rate"`
	Status    EmployeeStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CPF       string         `gorm:"type:varchar(14);not null" json:"cpf"`
	PixKey    string         `gorm:"type:varchar(255)" json:"pix_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
