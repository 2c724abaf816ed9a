package services

import (
	"errors"
	"fmt"

	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/repository"
	"gorm.io/gorm"
)

var ErrEquipmentNotFound = errors.New("equipment not found")

// EquipmentService provides business logic for equipment operations.
type EquipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

// NewEquipmentService creates a new EquipmentService.
func NewEquipmentService(equipmentRepo repository.EquipmentRepository) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
	}
}

// CreateEquipment registers equipment under one of the caller's companies.
func (s *EquipmentService) CreateEquipment(equipment *models.Equipment, callerCompanyIDs []uint64) (*models.Equipment, error) {
	if !containsUint64(callerCompanyIDs, equipment.CompanyID) {
		return nil, ErrNotCompanyMember
	}

	if err := s.equipmentRepo.Create(equipment); err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	return equipment, nil
}

// ListEquipment returns a company's equipment ordered by name.
func (s *EquipmentService) ListEquipment(companyID uint64, callerCompanyIDs []uint64) ([]models.Equipment, error) {
	if !containsUint64(callerCompanyIDs, companyID) {
		return nil, ErrNotCompanyMember
	}

	equipment, err := s.equipmentRepo.List(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return equipment, nil
}

// GetEquipment returns equipment when the caller belongs to its company.
func (s *EquipmentService) GetEquipment(id uint64, callerCompanyIDs []uint64) (*models.Equipment, error) {
	equipment, err := s.equipmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}

	if !containsUint64(callerCompanyIDs, equipment.CompanyID) {
		return nil, ErrNotCompanyMember
	}

	return equipment, nil
}

// UpdateEquipment renames equipment belonging to one of the caller's
// companies.
func (s *EquipmentService) UpdateEquipment(id uint64, name string, callerCompanyIDs []uint64) (*models.Equipment, error) {
	equipment, err := s.GetEquipment(id, callerCompanyIDs)
	if err != nil {
		return nil, err
	}

	equipment.Name = name
	if err := s.equipmentRepo.Update(equipment); err != nil {
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}
	return equipment, nil
}
