package models

import (
	"time"

	"gorm.io/gorm"
)

type WeatherPeriod string

const (
	PeriodMorning   WeatherPeriod = "morning"
	PeriodAfternoon WeatherPeriod = "afternoon"
	PeriodNight     WeatherPeriod = "night"
)

type WeatherClimate string

const (
	ClimateClear  WeatherClimate = "clear"
	ClimateCloudy WeatherClimate = "cloudy"
	ClimateRainy  WeatherClimate = "rainy"
)

type WeatherCondition string

const (
	ConditionWorkable   WeatherCondition = "workable"
	ConditionUnworkable WeatherCondition = "unworkable"
)

// ConstructionLog is the daily site diary of a project. Its child collections
// are owned exclusively by the log and are replaced wholesale on update.
type ConstructionLog struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	ProjectID uint64         `gorm:"not null;index" json:"project_id"`
	Date      time.Time      `gorm:"not null;index" json:"date"`
	Tasks     string         `gorm:"type:text" json:"tasks"`
	Comments  string         `gorm:"type:text" json:"comments"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project        Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Weathers       []WeatherEntry   `gorm:"foreignKey:LogID" json:"weathers,omitempty"`
	Occurrences    []Occurrence     `gorm:"foreignKey:LogID" json:"occurrences,omitempty"`
	Services       []ServiceEntry   `gorm:"foreignKey:LogID" json:"services,omitempty"`
	Attachments    []Attachment     `gorm:"foreignKey:LogID" json:"attachments,omitempty"`
	EmployeeHours  []EmployeeHour   `gorm:"foreignKey:LogID" json:"employee_hours,omitempty"`
	EquipmentUsage []EquipmentUsage `gorm:"foreignKey:LogID" json:"equipment_usage,omitempty"`
}

// Child rows are hard-deleted on replacement, so none of them carries a
// soft-delete column.

type WeatherEntry struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	LogID     uint64           `gorm:"not null;index" json:"log_id"`
	Period    WeatherPeriod    `gorm:"type:varchar(20);not null" json:"period"`
	Climate   WeatherClimate   `gorm:"type:varchar(20);not null" json:"climate"`
	Condition WeatherCondition `gorm:"type:varchar(20);not null" json:"condition"`
	CreatedAt time.Time        `json:"created_at"`
}

type Occurrence struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	LogID       uint64    `gorm:"not null;index" json:"log_id"`
	Type        string    `gorm:"type:varchar(100);not null" json:"type"`
	Description string    `gorm:"type:text;not null" json:"description"`
	EmployeeID  *uint64   `json:"employee_id"`
	Role        *string   `gorm:"type:varchar(100)" json:"role"`
	CreatedAt   time.Time `json:"created_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

type ServiceEntry struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	LogID       uint64    `gorm:"not null;index" json:"log_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Value       float64   `gorm:"not null" json:"value"`
	CreatedAt   time.Time `json:"created_at"`
}

type Attachment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	LogID     uint64    `gorm:"not null;index" json:"log_id"`
	URL       string    `gorm:"type:varchar(2048);not null" json:"url"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// EmployeeHour records hours worked by one employee on the log's date. The
// employee's role is snapshotted at write time for the hours report.
type EmployeeHour struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	LogID       uint64    `gorm:"not null;index" json:"log_id"`
	EmployeeID  uint64    `gorm:"not null;index" json:"employee_id"`
	HoursWorked float64   `gorm:"not null" json:"hours_worked"`
	Role        string    `gorm:"type:varchar(100)" json:"role"`
	CreatedAt   time.Time `json:"created_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

type EquipmentUsage struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	LogID       uint64    `gorm:"not null;index" json:"log_id"`
	EquipmentID uint64    `gorm:"not null;index" json:"equipment_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`

	Equipment Equipment `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
}
