package services

import (
	"errors"
	"fmt"

	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/repository"
	"github.com/obrafacil/obrafacil-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrNotCompanyMember     = errors.New("user is not a member of the company")
	ErrInvalidProjectStatus = errors.New("invalid project status")
)

// ProjectService provides business logic for project operations. Every
// operation verifies the caller's membership in the project's owning company
// before touching anything.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProject creates a project for one of the caller's companies.
func (s *ProjectService) CreateProject(project *models.Project, callerCompanyIDs []uint64) (*models.Project, error) {
	if !containsUint64(callerCompanyIDs, project.CompanyID) {
		return nil, ErrNotCompanyMember
	}

	if project.Status == "" {
		project.Status = models.ProjectNotStarted
	}
	if !models.ValidProjectStatus(project.Status) {
		return nil, ErrInvalidProjectStatus
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// ListProjects returns a page of projects across the caller's companies,
// optionally filtered by status, plus the total match count.
func (s *ProjectService) ListProjects(callerCompanyIDs []uint64, status *models.ProjectStatus, pagination *utils.PaginationParams) ([]models.Project, int64, error) {
	if status != nil && !models.ValidProjectStatus(*status) {
		return nil, 0, ErrInvalidProjectStatus
	}

	projects, total, err := s.projectRepo.List(repository.ProjectFilter{
		CompanyIDs: callerCompanyIDs,
		Status:     status,
		Pagination: pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject returns a project when the caller belongs to its company.
func (s *ProjectService) GetProject(id uint64, callerCompanyIDs []uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
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

// UpdateProject applies changes to a project owned by one of the caller's
// companies.
func (s *ProjectService) UpdateProject(updated *models.Project, callerCompanyIDs []uint64) (*models.Project, error) {
	current, err := s.projectRepo.FindByID(updated.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !containsUint64(callerCompanyIDs, current.CompanyID) {
		return nil, ErrNotCompanyMember
	}

	if !models.ValidProjectStatus(updated.Status) {
		return nil, ErrInvalidProjectStatus
	}

	// Ownership never moves between companies through an update.
	updated.CompanyID = current.CompanyID
	updated.CreatedAt = current.CreatedAt

	if err := s.projectRepo.Update(updated); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return updated, nil
}

// DeleteProject removes a project owned by one of the caller's companies.
func (s *ProjectService) DeleteProject(id uint64, callerCompanyIDs []uint64) error {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if !containsUint64(callerCompanyIDs, project.CompanyID) {
		return ErrNotCompanyMember
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// containsUint64 reports whether values includes v.
func containsUint64(values []uint64, v uint64) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
