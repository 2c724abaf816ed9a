package models

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "free"
	PlanBasic   SubscriptionPlan = "basic"
	PlanPremium SubscriptionPlan = "premium"
)

type Company struct {
	ID               uint64           `gorm:"primarykey" json:"id"`
	CompanyName      string           `gorm:"type:varchar(255);not null" json:"company_name"`
	CNPJ             *string          `gorm:"type:varchar(18);uniqueIndex" json:"cnpj"`
	PositionCompany  *string          `gorm:"type:varchar(100)" json:"position_company"`
	SubscriptionPlan SubscriptionPlan `gorm:"type:varchar(20);not null;default:'free'" json:"subscription_plan"`
	OwnerID          uint64           `gorm:"not null" json:"owner_id"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Members   []CompanyMember `gorm:"foreignKey:CompanyID" json:"members,omitempty"`
	Projects  []Project       `gorm:"foreignKey:CompanyID" json:"projects,omitempty"`
	Employees []Employee      `gorm:"foreignKey:CompanyID" json:"employees,omitempty"`
}
