package repository

import (
	"github.com/obrafacil/obrafacil-api/internal/models"
	"gorm.io/gorm"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create creates a new company
func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByCNPJ finds a company by its tax id
func (r *GormCompanyRepository) FindByCNPJ(cnpj string) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("cnpj = ?", cnpj).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// AddMember adds a member to a company
func (r *GormCompanyRepository) AddMember(member *models.CompanyMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific company membership
func (r *GormCompanyRepository) FindMember(companyID, userID uint64) (*models.CompanyMember, error) {
	var member models.CompanyMember
	if err := r.db.Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembershipsByUserID lists all companies a user belongs to
func (r *GormCompanyRepository) ListMembershipsByUserID(userID uint64) ([]models.CompanyMember, error) {
	var memberships []models.CompanyMember
	if err := r.db.Preload("Company").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of a company
func (r *GormCompanyRepository) ListMembers(companyID uint64) ([]models.CompanyMember, error) {
	var members []models.CompanyMember
	if err := r.db.Preload("User").
		Where("company_id = ?", companyID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
