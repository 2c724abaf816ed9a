package dto

import (
	"time"

	"github.com/obrafacil/obrafacil-api/internal/models"
)

// WeatherDTO represents one weather entry in API responses
type WeatherDTO struct {
	ID        uint64                  `json:"id"`
	Period    models.WeatherPeriod    `json:"period"`
	Climate   models.WeatherClimate   `json:"climate"`
	Condition models.WeatherCondition `json:"condition"`
}

// OccurrenceDTO represents one occurrence in API responses. EmployeeName is
// denormalized from the referenced employee; Role is the snapshot taken when
// the occurrence was recorded.
type OccurrenceDTO struct {
	ID           uint64  `json:"id"`
	Type         string  `json:"type"`
	Description  string  `json:"description"`
	EmployeeID   *uint64 `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Role         *string `json:"role,omitempty"`
}

// ServiceDTO represents one service entry in API responses
type ServiceDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

// AttachmentDTO represents one attachment in API responses
type AttachmentDTO struct {
	ID   uint64 `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// EmployeeHourDTO represents one employee-hours entry in API responses.
// EmployeeName comes from the current employee record; Role is the snapshot
// taken when the entry was written.
type EmployeeHourDTO struct {
	ID           uint64  `json:"id"`
	EmployeeID   uint64  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	HoursWorked  float64 `json:"hours_worked"`
	Role         string  `json:"role"`
}

// EquipmentUsageDTO represents one equipment usage entry in API responses
type EquipmentUsageDTO struct {
	ID            uint64 `json:"id"`
	EquipmentID   uint64 `json:"equipment_id"`
	EquipmentName string `json:"equipment_name"`
	Quantity      int    `json:"quantity"`
}

// ConstructionLogDTO represents a full log aggregate in API responses
type ConstructionLogDTO struct {
	ID             uint64              `json:"id"`
	ProjectID      uint64              `json:"project_id"`
	Date           time.Time           `json:"date"`
	Tasks          string              `json:"tasks"`
	Comments       string              `json:"comments"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Weathers       []WeatherDTO        `json:"weathers"`
	Occurrences    []OccurrenceDTO     `json:"occurrences"`
	Services       []ServiceDTO        `json:"services"`
	Attachments    []AttachmentDTO     `json:"attachments"`
	EmployeeHours  []EmployeeHourDTO   `json:"employee_hours"`
	EquipmentUsage []EquipmentUsageDTO `json:"equipment_usage"`
}

// ToConstructionLogDTO converts a ConstructionLog aggregate to its response
// shape, denormalizing employee and equipment names from the preloaded
// relations.
func ToConstructionLogDTO(log models.ConstructionLog) ConstructionLogDTO {
	dto := ConstructionLogDTO{
		ID:             log.ID,
		ProjectID:      log.ProjectID,
		Date:           log.Date,
		Tasks:          log.Tasks,
		Comments:       log.Comments,
		CreatedAt:      log.CreatedAt,
		UpdatedAt:      log.UpdatedAt,
		Weathers:       make([]WeatherDTO, len(log.Weathers)),
		Occurrences:    make([]OccurrenceDTO, len(log.Occurrences)),
		Services:       make([]ServiceDTO, len(log.Services)),
		Attachments:    make([]AttachmentDTO, len(log.Attachments)),
		EmployeeHours:  make([]EmployeeHourDTO, len(log.EmployeeHours)),
		EquipmentUsage: make([]EquipmentUsageDTO, len(log.EquipmentUsage)),
	}

	for i, w := range log.Weathers {
		dto.Weathers[i] = WeatherDTO{
			ID:        w.ID,
			Period:    w.Period,
			Climate:   w.Climate,
			Condition: w.Condition,
		}
	}

	for i, o := range log.Occurrences {
		item := OccurrenceDTO{
			ID:          o.ID,
			Type:        o.Type,
			Description: o.Description,
			EmployeeID:  o.EmployeeID,
			Role:        o.Role,
		}
		if o.Employee != nil && o.Employee.ID != 0 {
			name := o.Employee.Name
			item.EmployeeName = &name
		}
		dto.Occurrences[i] = item
	}

	for i, s := range log.Services {
		dto.Services[i] = ServiceDTO{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Value:       s.Value,
		}
	}

	for i, a := range log.Attachments {
		dto.Attachments[i] = AttachmentDTO{
			ID:   a.ID,
			URL:  a.URL,
			Type: a.Type,
		}
	}

	for i, h := range log.EmployeeHours {
		dto.EmployeeHours[i] = EmployeeHourDTO{
			ID:           h.ID,
			EmployeeID:   h.EmployeeID,
			EmployeeName: h.Employee.Name,
			HoursWorked:  h.HoursWorked,
			Role:         h.Role,
		}
	}

	for i, u := range log.EquipmentUsage {
		dto.EquipmentUsage[i] = EquipmentUsageDTO{
			ID:            u.ID,
			EquipmentID:   u.EquipmentID,
			EquipmentName: u.Equipment.Name,
			Quantity:      u.Quantity,
		}
	}

	return dto
}

// ToConstructionLogDTOs converts a slice of log aggregates
func ToConstructionLogDTOs(logs []models.ConstructionLog) []ConstructionLogDTO {
	items := make([]ConstructionLogDTO, len(logs))
	for i, log := range logs {
		items[i] = ToConstructionLogDTO(log)
	}
	return items
}
