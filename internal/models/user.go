package models

import (
	"time"

	"gorm.io/gorm"
)

type UserType string

const (
	UserTypePerson   UserType = "person"
	UserTypeBusiness UserType = "business"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"type:varchar(30);not null" json:"phone"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CPF          string         `gorm:"type:varchar(14);uniqueIndex;not null" json:"cpf"`
	UserType     UserType       `gorm:"type:varchar(20);not null" json:"user_type"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Memberships []CompanyMember `gorm:"foreignKey:UserID" json:"-"`
}
