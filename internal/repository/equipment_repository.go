package repository

import (
	"github.com/obrafacil/obrafacil-api/internal/models"
	"gorm.io/gorm"
)

// GormEquipmentRepository is a GORM implementation of EquipmentRepository
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewEquipmentRepository creates a new EquipmentRepository
func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

// Create creates a new equipment record
func (r *GormEquipmentRepository) Create(equipment *models.Equipment) error {
	return r.db.Create(equipment).Error
}

// FindByID finds equipment by ID
func (r *GormEquipmentRepository) FindByID(id uint64) (*models.Equipment, error) {
	var equipment models.Equipment
	if err := r.db.First(&equipment, id).Error; err != nil {
		return nil, err
	}
	return &equipment, nil
}

// FindByIDs batch-resolves equipment by id within a company
func (r *GormEquipmentRepository) FindByIDs(ids []uint64, companyID uint64) ([]models.Equipment, error) {
	if len(ids) == 0 {
		return []models.Equipment{}, nil
	}

	var equipment []models.Equipment
	if err := r.db.Where("company_id = ? AND id IN ?", companyID, ids).
		Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

// List retrieves a company's equipment ordered by name
func (r *GormEquipmentRepository) List(companyID uint64) ([]models.Equipment, error) {
	var equipment []models.Equipment
	if err := r.db.Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

// Update updates an equipment record
func (r *GormEquipmentRepository) Update(equipment *models.Equipment) error {
	return r.db.Save(equipment).Error
}
