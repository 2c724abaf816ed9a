package repository

import (
	"time"

	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithCompany creates a user, their company, and the creator's
	// admin membership within a single transaction.
	CreateWithCompany(user *models.User, company *models.Company, member *models.CompanyMember) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByCPF finds a user by personal tax id
	FindByCPF(cpf string) (*models.User, error)

	// List retrieves users, optionally restricted to a company's members
	List(companyID *uint64) ([]models.User, error)

	// Update persists profile changes
	Update(user *models.User) error
}

// CompanyRepository defines the interface for company and membership data access
type CompanyRepository interface {
	// Create creates a new company
	Create(company *models.Company) error

	// FindByID finds a company by ID
	FindByID(id uint64) (*models.Company, error)

	// FindByCNPJ finds a company by its tax id
	FindByCNPJ(cnpj string) (*models.Company, error)

	// AddMember adds a member to a company
	AddMember(member *models.CompanyMember) error

	// FindMember finds a specific company membership
	FindMember(companyID, userID uint64) (*models.CompanyMember, error)

	// ListMembershipsByUserID lists all companies a user belongs to
	ListMembershipsByUserID(userID uint64) ([]models.CompanyMember, error)

	// ListMembers lists all members of a company
	ListMembers(companyID uint64) ([]models.CompanyMember, error)
}

// EmployeeFilter holds filtering options for listing employees
type EmployeeFilter struct {
	CompanyID uint64
	Status    *models.EmployeeStatus
}

// HoursFilter selects employee-hour rows for the report
type HoursFilter struct {
	ProjectID uint64
	CompanyID uint64
	DateFrom  *time.Time
	DateTo    *time.Time
}

// HoursRow is one employee-hour entry joined with its employee and the
// parent log's date, as consumed by the hours-worked report.
type HoursRow struct {
	EmployeeID   uint64
	EmployeeName string
	DailyRate    float64
	HoursWorked  float64
	Date         time.Time
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id uint64) (*models.Employee, error)

	// FindByIDs batch-resolves employees by id within a company
	FindByIDs(ids []uint64, companyID uint64) ([]models.Employee, error)

	// List retrieves a company's employees
	List(filter EmployeeFilter) ([]models.Employee, error)

	// Update updates an employee
	Update(employee *models.Employee) error

	// Delete soft deletes an employee
	Delete(id uint64) error

	// HoursWorked returns employee-hour rows for a project ordered by the
	// log date ascending, joined with employee name and daily rate
	HoursWorked(filter HoursFilter) ([]HoursRow, error)
}

// EquipmentRepository defines the interface for equipment data access
type EquipmentRepository interface {
	// Create creates a new equipment record
	Create(equipment *models.Equipment) error

	// FindByID finds equipment by ID
	FindByID(id uint64) (*models.Equipment, error)

	// FindByIDs batch-resolves equipment by id within a company
	FindByIDs(ids []uint64, companyID uint64) ([]models.Equipment, error)

	// List retrieves a company's equipment ordered by name
	List(companyID uint64) ([]models.Equipment, error)

	// Update updates an equipment record
	Update(equipment *models.Equipment) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	CompanyIDs []uint64
	Status     *models.ProjectStatus
	Pagination *utils.PaginationParams
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// List retrieves projects for the given companies along with the total
	// count before pagination
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete soft deletes a project
	Delete(id uint64) error
}

// LogFilter selects construction logs for a project
type LogFilter struct {
	ProjectID uint64
	DateFrom  *time.Time
	DateTo    *time.Time
}

// ChildReplacement carries the child collections to replace on update. A nil
// slice pointer means "leave that child type untouched"; a non-nil pointer
// replaces the prior set wholesale, even when the new set is empty.
type ChildReplacement struct {
	Weathers       *[]models.WeatherEntry
	Occurrences    *[]models.Occurrence
	Services       *[]models.ServiceEntry
	Attachments    *[]models.Attachment
	EmployeeHours  *[]models.EmployeeHour
	EquipmentUsage *[]models.EquipmentUsage
}

// ConstructionLogRepository defines the interface for the log aggregate.
// Aggregate writes are atomic: either the parent row and every child row
// commit together, or nothing does.
type ConstructionLogRepository interface {
	// CreateAggregate inserts the log and all child rows in one transaction
	CreateAggregate(log *models.ConstructionLog) error

	// FindByID finds a log with all child collections, optionally requiring
	// an exact date match
	FindByID(id uint64, date *time.Time) (*models.ConstructionLog, error)

	// List retrieves a project's logs ordered by date ascending
	List(filter LogFilter) ([]models.ConstructionLog, error)

	// UpdateAggregate saves parent-row changes and replaces the child
	// collections present in the replacement, all in one transaction
	UpdateAggregate(log *models.ConstructionLog, replace ChildReplacement) error
}
