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

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project under one of the caller's companies.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		CompanyID       uint64    `json:"company_id" binding:"required"`
		Name            string    `json:"name" binding:"required"`
		Description     string    `json:"description"`
		Responsible     string    `json:"responsible" binding:"required"`
		Engineer        *string   `json:"engineer"`
		CreaNumber      *string   `json:"crea_number"`
		StartDate       time.Time `json:"start_date" binding:"required"`
		ExpectedEndDate time.Time `json:"expected_end_date" binding:"required"`
		Status          string    `json:"status"`
		Address         string    `json:"address"`
		Client          string    `json:"client"`
		EstimatedBudget *float64  `json:"estimated_budget"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project := &models.Project{
		CompanyID:       req.CompanyID,
		Name:            req.Name,
		Description:     req.Description,
		Responsible:     req.Responsible,
		Engineer:        req.Engineer,
		CreaNumber:      req.CreaNumber,
		StartDate:       req.StartDate,
		ExpectedEndDate: req.ExpectedEndDate,
		Status:          models.ProjectStatus(req.Status),
		Address:         req.Address,
		Client:          req.Client,
		EstimatedBudget: req.EstimatedBudget,
	}

	project, err := h.projectService.CreateProject(project, claims.CompanyIDs())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects returns the caller's projects across all their companies.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var status *models.ProjectStatus
	if raw := c.Query("status"); raw != "" {
		s := models.ProjectStatus(raw)
		status = &s
	}

	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.ListProjects(claims.CompanyIDs(), status, &params)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetProject returns one project.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project id")
		return
	}

	project, err := h.projectService.GetProject(id, claims.CompanyIDs())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject updates a project's fields.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project id")
		return
	}

	current, err := h.projectService.GetProject(id, claims.CompanyIDs())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	type UpdateProjectRequest struct {
		Name            *string    `json:"name"`
		Description     *string    `json:"description"`
		Responsible     *string    `json:"responsible"`
		Engineer        *string    `json:"engineer"`
		CreaNumber      *string    `json:"crea_number"`
		StartDate       *time.Time `json:"start_date"`
		ExpectedEndDate *time.Time `json:"expected_end_date"`
		Status          *string    `json:"status"`
		Address         *string    `json:"address"`
		Client          *string    `json:"client"`
		EstimatedBudget *float64   `json:"estimated_budget"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Responsible != nil {
		current.Responsible = *req.Responsible
	}
	if req.Engineer != nil {
		current.Engineer = req.Engineer
	}
	if req.CreaNumber != nil {
		current.CreaNumber = req.CreaNumber
	}
	if req.StartDate != nil {
		current.StartDate = *req.StartDate
	}
	if req.ExpectedEndDate != nil {
		current.ExpectedEndDate = *req.ExpectedEndDate
	}
	if req.Status != nil {
		current.Status = models.ProjectStatus(*req.Status)
	}
	if req.Address != nil {
		current.Address = *req.Address
	}
	if req.Client != nil {
		current.Client = *req.Client
	}
	if req.EstimatedBudget != nil {
		current.EstimatedBudget = req.EstimatedBudget
	}

	project, err := h.projectService.UpdateProject(current, claims.CompanyIDs())
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project and its logs.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project id")
		return
	}

	if err := h.projectService.DeleteProject(id, claims.CompanyIDs()); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidProjectStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotCompanyMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
