package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/repository"
	"github.com/obrafacil/obrafacil-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrInvalidEmployeeStatus = errors.New("invalid employee status")
)

// EmployeeService provides business logic for employee operations and the
// hours-worked report.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	projectRepo  repository.ProjectRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo repository.EmployeeRepository, projectRepo repository.ProjectRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		projectRepo:  projectRepo,
	}
}

// CreateEmployee registers an employee under one of the caller's companies.
func (s *EmployeeService) CreateEmployee(employee *models.Employee, callerCompanyIDs []uint64) (*models.Employee, error) {
	if !containsUint64(callerCompanyIDs, employee.CompanyID) {
		return nil, ErrNotCompanyMember
	}

	if employee.Status == "" {
		employee.Status = models.EmployeeActive
	}
	if employee.Status != models.EmployeeActive && employee.Status != models.EmployeeInactive {
		return nil, ErrInvalidEmployeeStatus
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

// ListEmployees returns a company's employees, optionally filtered by status.
func (s *EmployeeService) ListEmployees(companyID uint64, status *models.EmployeeStatus, callerCompanyIDs []uint64) ([]models.Employee, error) {
	if !containsUint64(callerCompanyIDs, companyID) {
		return nil, ErrNotCompanyMember
	}
	if status != nil && *status != models.EmployeeActive && *status != models.EmployeeInactive {
		return nil, ErrInvalidEmployeeStatus
	}

	employees, err := s.employeeRepo.List(repository.EmployeeFilter{
		CompanyID: companyID,
		Status:    status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// GetEmployee returns an employee when the caller belongs to their company.
func (s *EmployeeService) GetEmployee(id uint64, callerCompanyIDs []uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if !containsUint64(callerCompanyIDs, employee.CompanyID) {
		return nil, ErrNotCompanyMember
	}

	return employee, nil
}

// UpdateEmployeeInput carries the mutable employee fields; nil means unchanged.
type UpdateEmployeeInput struct {
	Name      *string
	Phone     *string
	Role      *string
	DailyRate *float64
	Status    *models.EmployeeStatus
	CPF       *string
	PixKey    *string
}

// UpdateEmployee applies changes to an employee of one of the caller's
// companies.
func (s *EmployeeService) UpdateEmployee(id uint64, input UpdateEmployeeInput, callerCompanyIDs []uint64) (*models.Employee, error) {
	employee, err := s.GetEmployee(id, callerCompanyIDs)
	if err != nil {
		return nil, err
	}

	if input.Status != nil && *input.Status != models.EmployeeActive && *input.Status != models.EmployeeInactive {
		return nil, ErrInvalidEmployeeStatus
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Role != nil {
		employee.Role = *input.Role
	}
	if input.DailyRate != nil {
		employee.DailyRate = *input.DailyRate
	}
	if input.Status != nil {
		employee.Status = *input.Status
	}
	if input.CPF != nil {
		employee.CPF = *input.CPF
	}
	if input.PixKey != nil {
		employee.PixKey = *input.PixKey
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// DeleteEmployee soft deletes an employee. Historical log entries keep their
// snapshot of the employee's name and role.
func (s *EmployeeService) DeleteEmployee(id uint64, callerCompanyIDs []uint64) error {
	if _, err := s.GetEmployee(id, callerCompanyIDs); err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// WorkDay is one day's entry inside an employee's hours report.
type WorkDay struct {
	HoursWorked float64 `json:"hours_worked"`
	Date        string  `json:"date"`
}

// EmployeeHoursReport aggregates a single employee's logged hours on a
// project, one WorkDay per log entry in date order.
type EmployeeHoursReport struct {
	EmployeeID uint64    `json:"employee_id"`
	Name       string    `json:"name"`
	DailyRate  float64   `json:"daily_rate"`
	WorkDays   []WorkDay `json:"work_days"`
}

// HoursReport builds the per-employee hours report for a project, optionally
// bounded by an inclusive date range. Entries are grouped per employee but
// never summed; each logged day stays visible.
func (s *EmployeeService) HoursReport(projectID uint64, dateFrom, dateTo *time.Time, callerCompanyIDs []uint64) ([]EmployeeHoursReport, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !containsUint64(callerCompanyIDs, project.CompanyID) {
		return nil, ErrNotCompanyMember
	}

	rows, err := s.employeeRepo.HoursWorked(repository.HoursFilter{
		ProjectID: projectID,
		CompanyID: project.CompanyID,
		DateFrom:  dateFrom,
		DateTo:    dateTo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query hours worked: %w", err)
	}

	// Group by employee, keeping first-appearance order from the date-sorted
	// rows.
	reports := make([]EmployeeHoursReport, 0)
	index := make(map[uint64]int)
	for _, row := range rows {
		i, ok := index[row.EmployeeID]
		if !ok {
			i = len(reports)
			index[row.EmployeeID] = i
			reports = append(reports, EmployeeHoursReport{
				EmployeeID: row.EmployeeID,
				Name:       row.EmployeeName,
				DailyRate:  row.DailyRate,
				WorkDays:   make([]WorkDay, 0, 1),
			})
		}
		reports[i].WorkDays = append(reports[i].WorkDays, WorkDay{
			HoursWorked: row.HoursWorked,
			Date:        utils.FormatReportDate(row.Date),
		})
	}

	return reports, nil
}
