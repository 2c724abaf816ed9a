package services

import (
	"errors"
	"testing"
	"time"

	"github.com/obrafacil/obrafacil-api/internal/database"
	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Shared fixtures for the service tests. Every test gets a fresh in-memory
// database.

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyMember{},
		&models.Employee{},
		&models.Equipment{},
		&models.Project{},
		&models.ConstructionLog{},
		&models.WeatherEntry{},
		&models.Occurrence{},
		&models.ServiceEntry{},
		&models.Attachment{},
		&models.EmployeeHour{},
		&models.EquipmentUsage{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createUserAndCompany(t *testing.T, db *gorm.DB, email, cpf string) (*models.User, *models.Company) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret!1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		Phone:        "11999990000",
		PasswordHash: string(hash),
		CPF:          cpf,
		UserType:     models.UserTypePerson,
	}
	require.NoError(t, db.Create(user).Error)

	company := &models.Company{
		CompanyName:      user.Name,
		SubscriptionPlan: models.PlanFree,
		OwnerID:          user.ID,
	}
	require.NoError(t, db.Create(company).Error)

	member := &models.CompanyMember{
		CompanyID: company.ID,
		UserID:    user.ID,
		Role:      models.RoleAdmin,
		JoinedAt:  time.Now(),
	}
	require.NoError(t, db.Create(member).Error)

	return user, company
}

func createProject(t *testing.T, db *gorm.DB, companyID uint64) *models.Project {
	t.Helper()

	project := &models.Project{
		CompanyID:       companyID,
		Name:            "Residencial Aurora",
		Responsible:     "Maria Souza",
		StartDate:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		ExpectedEndDate: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		Status:          models.ProjectInProgress,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func createEmployee(t *testing.T, db *gorm.DB, companyID uint64, name, role string) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		CompanyID: companyID,
		Name:      name,
		Role:      role,
		DailyRate: 250,
		Status:    models.EmployeeActive,
		CPF:       "123.456.789-00",
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func createEquipment(t *testing.T, db *gorm.DB, companyID uint64, name string) *models.Equipment {
	t.Helper()

	equipment := &models.Equipment{
		CompanyID: companyID,
		Name:      name,
	}
	require.NoError(t, db.Create(equipment).Error)
	return equipment
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

type sentEmail struct {
	to      string
	subject string
	html    string
}

type fakeMailer struct {
	sent []sentEmail
	fail bool
}

func (m *fakeMailer) Send(to, subject, html string) error {
	if m.fail {
		return errSendFailed
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, html: html})
	return nil
}

var errSendFailed = errors.New("smtp unavailable")
