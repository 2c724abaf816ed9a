package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrLogNotFound           = errors.New("construction log not found")
	ErrWeatherRequired       = errors.New("at least one weather entry is required")
	ErrEmployeeHoursRequired = errors.New("at least one employee hours entry is required")
	ErrInvalidWeatherEntry   = errors.New("invalid weather period, climate or condition")
	ErrInvalidQuantity       = errors.New("equipment quantity must be greater than zero")
	ErrInvalidHoursWorked    = errors.New("hours worked must be greater than zero")
)

// MissingReferencesError reports referenced ids that do not resolve to rows
// of the project's company. All missing ids of one entity are reported at
// once so a client can fix the request in a single pass.
type MissingReferencesError struct {
	Entity string
	IDs    []uint64
}

func (e *MissingReferencesError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("unknown %s ids: %s", e.Entity, strings.Join(parts, ", "))
}

// ConstructionLogService provides business logic for the daily log aggregate.
type ConstructionLogService struct {
	logRepo       repository.ConstructionLogRepository
	projectRepo   repository.ProjectRepository
	employeeRepo  repository.EmployeeRepository
	equipmentRepo repository.EquipmentRepository
}

// NewConstructionLogService creates a new ConstructionLogService.
func NewConstructionLogService(
	logRepo repository.ConstructionLogRepository,
	projectRepo repository.ProjectRepository,
	employeeRepo repository.EmployeeRepository,
	equipmentRepo repository.EquipmentRepository,
) *ConstructionLogService {
	return &ConstructionLogService{
		logRepo:       logRepo,
		projectRepo:   projectRepo,
		employeeRepo:  employeeRepo,
		equipmentRepo: equipmentRepo,
	}
}

// CreateLogInput represents a full log aggregate to create.
type CreateLogInput struct {
	ProjectID      uint64
	Date           time.Time
	Tasks          string
	Comments       string
	Weathers       []models.WeatherEntry
	Occurrences    []models.Occurrence
	Services       []models.ServiceEntry
	Attachments    []models.Attachment
	EmployeeHours  []models.EmployeeHour
	EquipmentUsage []models.EquipmentUsage
}

// CreateLog validates and persists a daily log with all its child
// collections atomically. Referenced employees and equipment must belong to
// the project's company; roles are snapshotted from the employee records at
// write time.
func (s *ConstructionLogService) CreateLog(input CreateLogInput, callerCompanyIDs []uint64) (*models.ConstructionLog, error) {
	project, err := s.findAuthorizedProject(input.ProjectID, callerCompanyIDs)
	if err != nil {
		return nil, err
	}

	if len(input.Weathers) == 0 {
		return nil, ErrWeatherRequired
	}
	if err := validateWeathers(input.Weathers); err != nil {
		return nil, err
	}
	if len(input.EmployeeHours) == 0 {
		return nil, ErrEmployeeHoursRequired
	}
	if err := validateHours(input.EmployeeHours); err != nil {
		return nil, err
	}
	if err := validateQuantities(input.EquipmentUsage); err != nil {
		return nil, err
	}

	employees, err := s.resolveEmployees(input.EmployeeHours, input.Occurrences, project.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := s.resolveEquipment(input.EquipmentUsage, project.CompanyID); err != nil {
		return nil, err
	}

	snapshotRoles(input.EmployeeHours, input.Occurrences, employees)

	log := &models.ConstructionLog{
		ProjectID:      input.ProjectID,
		Date:           input.Date,
		Tasks:          input.Tasks,
		Comments:       input.Comments,
		Weathers:       input.Weathers,
		Occurrences:    input.Occurrences,
		Services:       input.Services,
		Attachments:    input.Attachments,
		EmployeeHours:  input.EmployeeHours,
		EquipmentUsage: input.EquipmentUsage,
	}

	if err := s.logRepo.CreateAggregate(log); err != nil {
		return nil, fmt.Errorf("failed to create construction log: %w", err)
	}
	return log, nil
}

// GetLog returns a log with all child collections, optionally requiring the
// log to fall on an exact date.
func (s *ConstructionLogService) GetLog(id uint64, date *time.Time, callerCompanyIDs []uint64) (*models.ConstructionLog, error) {
	log, err := s.logRepo.FindByID(id, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("failed to find construction log: %w", err)
	}

	if _, err := s.findAuthorizedProject(log.ProjectID, callerCompanyIDs); err != nil {
		return nil, err
	}

	return log, nil
}

// ListLogs returns a project's logs ordered by date ascending, optionally
// bounded by an inclusive date range.
func (s *ConstructionLogService) ListLogs(projectID uint64, dateFrom, dateTo *time.Time, callerCompanyIDs []uint64) ([]models.ConstructionLog, error) {
	if _, err := s.findAuthorizedProject(projectID, callerCompanyIDs); err != nil {
		return nil, err
	}

	logs, err := s.logRepo.List(repository.LogFilter{
		ProjectID: projectID,
		DateFrom:  dateFrom,
		DateTo:    dateTo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list construction logs: %w", err)
	}
	return logs, nil
}

// UpdateLogInput carries a partial log update. Nil scalar pointers leave the
// parent field unchanged; nil slice pointers leave that child collection
// untouched, while a non-nil pointer replaces the prior set wholesale.
type UpdateLogInput struct {
	Date     *time.Time
	Tasks    *string
	Comments *string

	Weathers       *[]models.WeatherEntry
	Occurrences    *[]models.Occurrence
	Services       *[]models.ServiceEntry
	Attachments    *[]models.Attachment
	EmployeeHours  *[]models.EmployeeHour
	EquipmentUsage *[]models.EquipmentUsage
}

// UpdateLog applies a partial update to a log. Replaced child collections go
// through the same validation and reference resolution as on create, and a
// replaced weather or employee-hours set may not be empty.
func (s *ConstructionLogService) UpdateLog(id uint64, input UpdateLogInput, callerCompanyIDs []uint64) (*models.ConstructionLog, error) {
	log, err := s.logRepo.FindByID(id, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("failed to find construction log: %w", err)
	}

	project, err := s.findAuthorizedProject(log.ProjectID, callerCompanyIDs)
	if err != nil {
		return nil, err
	}

	if input.Weathers != nil {
		if len(*input.Weathers) == 0 {
			return nil, ErrWeatherRequired
		}
		if err := validateWeathers(*input.Weathers); err != nil {
			return nil, err
		}
	}
	if input.EmployeeHours != nil {
		if len(*input.EmployeeHours) == 0 {
			return nil, ErrEmployeeHoursRequired
		}
		if err := validateHours(*input.EmployeeHours); err != nil {
			return nil, err
		}
	}
	if input.EquipmentUsage != nil {
		if err := validateQuantities(*input.EquipmentUsage); err != nil {
			return nil, err
		}
	}

	var hours []models.EmployeeHour
	if input.EmployeeHours != nil {
		hours = *input.EmployeeHours
	}
	var occurrences []models.Occurrence
	if input.Occurrences != nil {
		occurrences = *input.Occurrences
	}
	if input.EmployeeHours != nil || input.Occurrences != nil {
		employees, err := s.resolveEmployees(hours, occurrences, project.CompanyID)
		if err != nil {
			return nil, err
		}
		snapshotRoles(hours, occurrences, employees)
	}
	if input.EquipmentUsage != nil {
		if err := s.resolveEquipment(*input.EquipmentUsage, project.CompanyID); err != nil {
			return nil, err
		}
	}

	if input.Date != nil {
		log.Date = *input.Date
	}
	if input.Tasks != nil {
		log.Tasks = *input.Tasks
	}
	if input.Comments != nil {
		log.Comments = *input.Comments
	}

	replace := repository.ChildReplacement{
		Weathers:       input.Weathers,
		Occurrences:    input.Occurrences,
		Services:       input.Services,
		Attachments:    input.Attachments,
		EmployeeHours:  input.EmployeeHours,
		EquipmentUsage: input.EquipmentUsage,
	}

	if err := s.logRepo.UpdateAggregate(log, replace); err != nil {
		return nil, fmt.Errorf("failed to update construction log: %w", err)
	}
	return log, nil
}

// findAuthorizedProject loads the project and verifies the caller belongs to
// its company.
func (s *ConstructionLogService) findAuthorizedProject(projectID uint64, callerCompanyIDs []uint64) (*models.Project, error) {
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
	return project, nil
}

// resolveEmployees batch-loads every employee referenced by the hours and
// occurrence entries and reports all missing ids at once.
func (s *ConstructionLogService) resolveEmployees(hours []models.EmployeeHour, occurrences []models.Occurrence, companyID uint64) (map[uint64]models.Employee, error) {
	idSet := make(map[uint64]struct{})
	for _, h := range hours {
		idSet[h.EmployeeID] = struct{}{}
	}
	for _, o := range occurrences {
		if o.EmployeeID != nil {
			idSet[*o.EmployeeID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return map[uint64]models.Employee{}, nil
	}

	ids := make([]uint64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	employees, err := s.employeeRepo.FindByIDs(ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employees: %w", err)
	}

	found := make(map[uint64]models.Employee, len(employees))
	for _, e := range employees {
		found[e.ID] = e
	}

	var missing []uint64
	for id := range idSet {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, &MissingReferencesError{Entity: "employee", IDs: missing}
	}

	return found, nil
}

// resolveEquipment verifies every referenced equipment id belongs to the
// company, reporting all missing ids at once.
func (s *ConstructionLogService) resolveEquipment(usage []models.EquipmentUsage, companyID uint64) error {
	idSet := make(map[uint64]struct{})
	for _, u := range usage {
		idSet[u.EquipmentID] = struct{}{}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	equipment, err := s.equipmentRepo.FindByIDs(ids, companyID)
	if err != nil {
		return fmt.Errorf("failed to resolve equipment: %w", err)
	}

	found := make(map[uint64]struct{}, len(equipment))
	for _, e := range equipment {
		found[e.ID] = struct{}{}
	}

	var missing []uint64
	for id := range idSet {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return &MissingReferencesError{Entity: "equipment", IDs: missing}
	}

	return nil
}

// snapshotRoles copies the current employee role onto hour and occurrence
// entries so the history survives later employee edits.
func snapshotRoles(hours []models.EmployeeHour, occurrences []models.Occurrence, employees map[uint64]models.Employee) {
	for i := range hours {
		if e, ok := employees[hours[i].EmployeeID]; ok {
			hours[i].Role = e.Role
		}
	}
	for i := range occurrences {
		if occurrences[i].EmployeeID == nil {
			continue
		}
		if e, ok := employees[*occurrences[i].EmployeeID]; ok {
			role := e.Role
			occurrences[i].Role = &role
		}
	}
}

func validateWeathers(weathers []models.WeatherEntry) error {
	for _, w := range weathers {
		switch w.Period {
		case models.PeriodMorning, models.PeriodAfternoon, models.PeriodNight:
		default:
			return ErrInvalidWeatherEntry
		}
		switch w.Climate {
		case models.ClimateClear, models.ClimateCloudy, models.ClimateRainy:
		default:
			return ErrInvalidWeatherEntry
		}
		switch w.Condition {
		case models.ConditionWorkable, models.ConditionUnworkable:
		default:
			return ErrInvalidWeatherEntry
		}
	}
	return nil
}

func validateHours(hours []models.EmployeeHour) error {
	for _, h := range hours {
		if h.HoursWorked <= 0 {
			return ErrInvalidHoursWorked
		}
	}
	return nil
}

func validateQuantities(usage []models.EquipmentUsage) error {
	for _, u := range usage {
		if u.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}
