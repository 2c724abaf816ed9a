package repository

import (
	"github.com/obrafacil/obrafacil-api/internal/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByIDs batch-resolves employees by id within a company
func (r *GormEmployeeRepository) FindByIDs(ids []uint64, companyID uint64) ([]models.Employee, error) {
	if len(ids) == 0 {
		return []models.Employee{}, nil
	}

	var employees []models.Employee
	if err := r.db.Where("company_id = ? AND id IN ?", companyID, ids).
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// List retrieves a company's employees
func (r *GormEmployeeRepository) List(filter EmployeeFilter) ([]models.Employee, error) {
	var employees []models.Employee
	query := r.db.Where("company_id = ?", filter.CompanyID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Order("name ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Update updates an employee
func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// Delete soft deletes an employee
func (r *GormEmployeeRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Employee{}, id).Error
}

// HoursWorked returns employee-hour rows for a project ordered by log date
// ascending. The date range filters on the parent log's date, inclusive on
// both ends.
func (r *GormEmployeeRepository) HoursWorked(filter HoursFilter) ([]HoursRow, error) {
	var rows []HoursRow

	query := r.db.Model(&models.EmployeeHour{}).
		Select("employee_hours.employee_id AS employee_id, employees.name AS employee_name, employees.daily_rate AS daily_rate, employee_hours.hours_worked AS hours_worked, construction_logs.date AS date").
		Joins("JOIN construction_logs ON construction_logs.id = employee_hours.log_id").
		Joins("JOIN employees ON employees.id = employee_hours.employee_id").
		Where("construction_logs.project_id = ?", filter.ProjectID).
		Where("construction_logs.deleted_at IS NULL").
		Where("employees.company_id = ?", filter.CompanyID)

	if filter.DateFrom != nil {
		query = query.Where("construction_logs.date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("construction_logs.date <= ?", *filter.DateTo)
	}

	if err := query.Order("construction_logs.date ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
