package repository

import (
	"errors"
	"fmt"

	"github.com/obrafacil/obrafacil-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateCompany is returned when creating a company fails inside the registration transaction.
	ErrCreateCompany = errors.New("user repository: create company failed")
	// ErrCreateMembership is returned when creating a membership fails inside the registration transaction.
	ErrCreateMembership = errors.New("user repository: create company member failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithCompany creates a user, their company, and the creator's admin
// membership within a single transaction.
func (r *GormUserRepository) CreateWithCompany(user *models.User, company *models.Company, member *models.CompanyMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		company.OwnerID = user.ID
		if err := tx.Create(company).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateCompany, err)
		}

		member.CompanyID = company.ID
		member.UserID = user.ID
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateMembership, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Memberships.Company").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Memberships.Company").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByCPF finds a user by personal tax id
func (r *GormUserRepository) FindByCPF(cpf string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("cpf = ?", cpf).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users, optionally restricted to a company's members
func (r *GormUserRepository) List(companyID *uint64) ([]models.User, error) {
	var users []models.User
	query := r.db.Preload("Memberships.Company")

	if companyID != nil {
		memberSubQuery := r.db.Model(&models.CompanyMember{}).
			Select("1").
			Where("company_members.user_id = users.id").
			Where("company_members.company_id = ?", *companyID)
		query = query.Where("EXISTS (?)", memberSubQuery)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists profile changes
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
