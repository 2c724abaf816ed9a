package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/obrafacil/obrafacil-api/internal/errors"
	"github.com/obrafacil/obrafacil-api/internal/middleware"
	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/services"
)

// EquipmentHandler coordinates equipment HTTP handlers.
type EquipmentHandler struct {
	equipmentService *services.EquipmentService
}

// NewEquipmentHandler creates a new EquipmentHandler.
func NewEquipmentHandler(equipmentService *services.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService: equipmentService,
	}
}

// CreateEquipment registers equipment under one of the caller's companies.
func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateEquipmentRequest struct {
		CompanyID uint64 `json:"company_id" binding:"required"`
		Name      string `json:"name" binding:"required"`
	}

	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	equipment := &models.Equipment{
		CompanyID: req.CompanyID,
		Name:      req.Name,
	}

	equipment, err := h.equipmentService.CreateEquipment(equipment, claims.CompanyIDs())
	if err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, equipment)
}

// ListEquipment returns a company's equipment.
func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
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

	equipment, err := h.equipmentService.ListEquipment(companyID, claims.CompanyIDs())
	if err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"equipment": equipment})
}

// GetEquipment returns one equipment record.
func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid equipment id")
		return
	}

	equipment, err := h.equipmentService.GetEquipment(id, claims.CompanyIDs())
	if err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, equipment)
}

// UpdateEquipment renames an equipment record.
func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid equipment id")
		return
	}

	type UpdateEquipmentRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	equipment, err := h.equipmentService.UpdateEquipment(id, req.Name, claims.CompanyIDs())
	if err != nil {
		respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, equipment)
}

func respondEquipmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotCompanyMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrEquipmentNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
