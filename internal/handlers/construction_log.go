package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/obrafacil/obrafacil-api/internal/dto"
	apierrors "github.com/obrafacil/obrafacil-api/internal/errors"
	"github.com/obrafacil/obrafacil-api/internal/middleware"
	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/services"
	"github.com/obrafacil/obrafacil-api/internal/utils"
)

// ConstructionLogHandler coordinates the daily log HTTP handlers.
type ConstructionLogHandler struct {
	logService *services.ConstructionLogService
}

// NewConstructionLogHandler creates a new ConstructionLogHandler.
func NewConstructionLogHandler(logService *services.ConstructionLogService) *ConstructionLogHandler {
	return &ConstructionLogHandler{
		logService: logService,
	}
}

// Request shapes for the log's child collections. Dates travel as YYYY-MM-DD
// strings; enums are validated at binding time so the service only sees
// well-formed values.

type weatherRequest struct {
	Period    string `json:"period" binding:"required,oneof=morning afternoon night"`
	Climate   string `json:"climate" binding:"required,oneof=clear cloudy rainy"`
	Condition string `json:"condition" binding:"required,oneof=workable unworkable"`
}

type occurrenceRequest struct {
	Type        string  `json:"type" binding:"required"`
	Description string  `json:"description" binding:"required"`
	EmployeeID  *uint64 `json:"employee_id"`
}

type serviceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Value       float64 `json:"value" binding:"gte=0"`
}

type attachmentRequest struct {
	URL  string `json:"url" binding:"required"`
	Type string `json:"type" binding:"required"`
}

type employeeHourRequest struct {
	EmployeeID  uint64  `json:"employee_id" binding:"required"`
	HoursWorked float64 `json:"hours_worked" binding:"required,gt=0"`
}

type equipmentUsageRequest struct {
	EquipmentID uint64 `json:"equipment_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// CreateLog creates a daily log with all its child collections.
func (h *ConstructionLogHandler) CreateLog(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateLogRequest struct {
		ProjectID      uint64                  `json:"project_id" binding:"required"`
		Date           string                  `json:"date" binding:"required"`
		Tasks          string                  `json:"tasks"`
		Comments       string                  `json:"comments"`
		Weathers       []weatherRequest        `json:"weathers" binding:"required,min=1,dive"`
		Occurrences    []occurrenceRequest     `json:"occurrences" binding:"omitempty,dive"`
		Services       []serviceRequest        `json:"services" binding:"omitempty,dive"`
		Attachments    []attachmentRequest     `json:"attachments" binding:"omitempty,dive"`
		EmployeeHours  []employeeHourRequest   `json:"employee_hours" binding:"required,min=1,dive"`
		EquipmentUsage []equipmentUsageRequest `json:"equipment_usage" binding:"omitempty,dive"`
	}

	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := utils.ParseDayStart(req.Date)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	log, err := h.logService.CreateLog(services.CreateLogInput{
		ProjectID:      req.ProjectID,
		Date:           date,
		Tasks:          req.Tasks,
		Comments:       req.Comments,
		Weathers:       toWeatherModels(req.Weathers),
		Occurrences:    toOccurrenceModels(req.Occurrences),
		Services:       toServiceModels(req.Services),
		Attachments:    toAttachmentModels(req.Attachments),
		EmployeeHours:  toEmployeeHourModels(req.EmployeeHours),
		EquipmentUsage: toEquipmentUsageModels(req.EquipmentUsage),
	}, claims.CompanyIDs())
	if err != nil {
		respondLogError(c, err)
		return
	}

	// Reload to pick up the denormalized employee and equipment relations.
	log, err = h.logService.GetLog(log.ID, nil, claims.CompanyIDs())
	if err != nil {
		respondLogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConstructionLogDTO(*log))
}

// GetLog returns one log with all child collections. With a date query the
// log must also fall on that exact day.
func (h *ConstructionLogHandler) GetLog(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid log id")
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		t, err := utils.ParseDayStart(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = &t
	}

	log, err := h.logService.GetLog(id, date, claims.CompanyIDs())
	if err != nil {
		respondLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConstructionLogDTO(*log))
}

// ListLogs returns a project's logs in date order, optionally bounded by an
// inclusive date range.
func (h *ConstructionLogHandler) ListLogs(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project id")
		return
	}

	dateFrom, dateTo, ok := parseDateRange(c)
	if !ok {
		return
	}

	logs, err := h.logService.ListLogs(projectID, dateFrom, dateTo, claims.CompanyIDs())
	if err != nil {
		respondLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"construction_logs": dto.ToConstructionLogDTOs(logs)})
}

// UpdateLog applies a partial update. Child collections that appear in the
// body replace the stored set wholesale; absent ones stay untouched.
func (h *ConstructionLogHandler) UpdateLog(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid log id")
		return
	}

	type UpdateLogRequest struct {
		Date     *string `json:"date"`
		Tasks    *string `json:"tasks"`
		Comments *string `json:"comments"`

		Weathers       *[]weatherRequest        `json:"weathers" binding:"omitempty,dive"`
		Occurrences    *[]occurrenceRequest     `json:"occurrences" binding:"omitempty,dive"`
		Services       *[]serviceRequest        `json:"services" binding:"omitempty,dive"`
		Attachments    *[]attachmentRequest     `json:"attachments" binding:"omitempty,dive"`
		EmployeeHours  *[]employeeHourRequest   `json:"employee_hours" binding:"omitempty,dive"`
		EquipmentUsage *[]equipmentUsageRequest `json:"equipment_usage" binding:"omitempty,dive"`
	}

	var req UpdateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateLogInput{
		Tasks:    req.Tasks,
		Comments: req.Comments,
	}

	if req.Date != nil {
		date, err := utils.ParseDayStart(*req.Date)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		input.Date = &date
	}

	if req.Weathers != nil {
		weathers := toWeatherModels(*req.Weathers)
		input.Weathers = &weathers
	}
	if req.Occurrences != nil {
		occurrences := toOccurrenceModels(*req.Occurrences)
		input.Occurrences = &occurrences
	}
	if req.Services != nil {
		entries := toServiceModels(*req.Services)
		input.Services = &entries
	}
	if req.Attachments != nil {
		attachments := toAttachmentModels(*req.Attachments)
		input.Attachments = &attachments
	}
	if req.EmployeeHours != nil {
		hours := toEmployeeHourModels(*req.EmployeeHours)
		input.EmployeeHours = &hours
	}
	if req.EquipmentUsage != nil {
		usage := toEquipmentUsageModels(*req.EquipmentUsage)
		input.EquipmentUsage = &usage
	}

	log, err := h.logService.UpdateLog(id, input, claims.CompanyIDs())
	if err != nil {
		respondLogError(c, err)
		return
	}

	// Reload to pick up the denormalized employee and equipment relations.
	log, err = h.logService.GetLog(log.ID, nil, claims.CompanyIDs())
	if err != nil {
		respondLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConstructionLogDTO(*log))
}

func toWeatherModels(reqs []weatherRequest) []models.WeatherEntry {
	out := make([]models.WeatherEntry, len(reqs))
	for i, r := range reqs {
		out[i] = models.WeatherEntry{
			Period:    models.WeatherPeriod(r.Period),
			Climate:   models.WeatherClimate(r.Climate),
			Condition: models.WeatherCondition(r.Condition),
		}
	}
	return out
}

func toOccurrenceModels(reqs []occurrenceRequest) []models.Occurrence {
	out := make([]models.Occurrence, len(reqs))
	for i, r := range reqs {
		out[i] = models.Occurrence{
			Type:        r.Type,
			Description: r.Description,
			EmployeeID:  r.EmployeeID,
		}
	}
	return out
}

func toServiceModels(reqs []serviceRequest) []models.ServiceEntry {
	out := make([]models.ServiceEntry, len(reqs))
	for i, r := range reqs {
		out[i] = models.ServiceEntry{
			Name:        r.Name,
			Description: r.Description,
			Value:       r.Value,
		}
	}
	return out
}

func toAttachmentModels(reqs []attachmentRequest) []models.Attachment {
	out := make([]models.Attachment, len(reqs))
	for i, r := range reqs {
		out[i] = models.Attachment{
			URL:  r.URL,
			Type: r.Type,
		}
	}
	return out
}

func toEmployeeHourModels(reqs []employeeHourRequest) []models.EmployeeHour {
	out := make([]models.EmployeeHour, len(reqs))
	for i, r := range reqs {
		out[i] = models.EmployeeHour{
			EmployeeID:  r.EmployeeID,
			HoursWorked: r.HoursWorked,
		}
	}
	return out
}

func toEquipmentUsageModels(reqs []equipmentUsageRequest) []models.EquipmentUsage {
	out := make([]models.EquipmentUsage, len(reqs))
	for i, r := range reqs {
		out[i] = models.EquipmentUsage{
			EquipmentID: r.EquipmentID,
			Quantity:    r.Quantity,
		}
	}
	return out
}

func respondLogError(c *gin.Context, err error) {
	var missing *services.MissingReferencesError
	switch {
	case errors.As(err, &missing):
		apierrors.BadRequestWithDetails(c, missing.Error(), gin.H{
			"entity":      missing.Entity,
			"missing_ids": missing.IDs,
		})
	case errors.Is(err, services.ErrWeatherRequired),
		errors.Is(err, services.ErrEmployeeHoursRequired),
		errors.Is(err, services.ErrInvalidWeatherEntry),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidHoursWorked):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotCompanyMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrLogNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
