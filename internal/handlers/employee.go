package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/obrafacil/obrafacil-api/internal/errors"
	"github.com/obrafacil/obrafacil-api/internal/middleware"
	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/services"
	"github.com/obrafacil/obrafacil-api/internal/utils"
)

// EmployeeHandler coordinates employee HTTP handlers, including the
// hours-worked report.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// CreateEmployee registers an employee under one of the caller's companies.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateEmployeeRequest struct {
		CompanyID uint64  `json:"company_id" binding:"required"`
		Name      string  `json:"name" binding:"required"`
		Phone     string  `json:"phone"`
		Role      string  `json:"role" binding:"required"`
		DailyRate float64 `json:"daily_rate" binding:"required,gt=0"`
		Status    string  `json:"status" binding:"omitempty,oneof=active inactive"`
		CPF       string  `json:"cpf" binding:"required"`
		PixKey    string  `json:"pix_key"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee := &models.Employee{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      req.Role,
		DailyRate: req.DailyRate,
		Status:    models.EmployeeStatus(req.Status),
		CPF:       req.CPF,
		PixKey:    req.PixKey,
	}

	employee, err := h.employeeService.CreateEmployee(employee, claims.CompanyIDs())
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// ListEmployees returns a company's employees.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	companyID, err := strconv.ParseUint(c.Query("company_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company_id")
		return
	}

	var status *models.EmployeeStatus
	if raw := c.Query("status"); raw != "" {
		s := models.EmployeeStatus(raw)
		status = &s
	}

	employees, err := h.employeeService.ListEmployees(companyID, status, claims.CompanyIDs())
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// GetEmployee returns one employee.
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee id")
		return
	}

	employee, err := h.employeeService.GetEmployee(id, claims.CompanyIDs())
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// UpdateEmployee updates an employee's fields.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee id")
		return
	}

	type UpdateEmployeeRequest struct {
		Name      *string  `json:"name"`
		Phone     *string  `json:"phone"`
		Role      *string  `json:"role"`
		DailyRate *float64 `json:"daily_rate"`
		Status    *string  `json:"status"`
		CPF       *string  `json:"cpf"`
		PixKey    *string  `json:"pix_key"`
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var status *models.EmployeeStatus
	if req.Status != nil {
		s := models.EmployeeStatus(*req.Status)
		status = &s
	}

	employee, err := h.employeeService.UpdateEmployee(id, services.UpdateEmployeeInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      req.Role,
		DailyRate: req.DailyRate,
		Status:    status,
		CPF:       req.CPF,
		PixKey:    req.PixKey,
	}, claims.CompanyIDs())
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee soft deletes an employee.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee id")
		return
	}

	if err := h.employeeService.DeleteEmployee(id, claims.CompanyIDs()); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

// HoursReport returns the per-employee hours worked on a project, optionally
// bounded by an inclusive date range.
func (h *EmployeeHandler) HoursReport(c *gin.Context) {
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

	report, err := h.employeeService.HoursReport(projectID, dateFrom, dateTo, claims.CompanyIDs())
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// parseDateRange reads the optional date_from / date_to query parameters as
// inclusive YYYY-MM-DD day bounds. It writes the error response itself when a
// value does not parse.
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	var dateFrom, dateTo *time.Time

	if raw := c.Query("date_from"); raw != "" {
		t, err := utils.ParseDayStart(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date_from, expected YYYY-MM-DD")
			return nil, nil, false
		}
		dateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := utils.ParseDayEnd(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date_to, expected YYYY-MM-DD")
			return nil, nil, false
		}
		dateTo = &t
	}

	return dateFrom, dateTo, true
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidEmployeeStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotCompanyMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
