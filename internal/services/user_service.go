package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/repository"
	"github.com/obrafacil/obrafacil-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken             = errors.New("email already registered")
	ErrCPFTaken               = errors.New("cpf already registered")
	ErrCNPJTaken              = errors.New("company already registered with this cnpj")
	ErrWeakPassword           = errors.New(utils.PasswordRequirements)
	ErrBusinessFieldsRequired = errors.New("companyName, cnpj and positionCompany are required for business users")
	ErrProvisionFieldsMissing = errors.New("name, phone, cpf and userType are required to provision a new user")
	ErrCompanyNotFound        = errors.New("company not found")
	ErrNotCompanyAdmin        = errors.New("only company admins can add users to this company")
	ErrAlreadyCompanyMember   = errors.New("user is already a member of this company")
	ErrSamePassword           = errors.New("new password must differ from the current one")
	ErrWrongPassword          = errors.New("current password is incorrect")
	ErrFailedToHashPassword   = errors.New("failed to hash password")
	ErrFailedToCreateUser     = errors.New("failed to create user")
	ErrFailedToCreateCompany  = errors.New("failed to create company")
	ErrFailedToAddMember      = errors.New("failed to add user to company")
)

// Mailer delivers transactional email.
type Mailer interface {
	Send(to, subject, html string) error
}

// UserService handles registration, profile and company membership logic.
type UserService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	mailer      Mailer
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, mailer Mailer) *UserService {
	return &UserService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		mailer:      mailer,
	}
}

// RegisterInput represents the information to register a new user.
type RegisterInput struct {
	Name             string
	Email            string
	Phone            string
	Password         string
	CPF              string
	UserType         models.UserType
	SubscriptionPlan models.SubscriptionPlan
	CompanyName      string
	CNPJ             string
	PositionCompany  string
}

// Register creates a user and their company. Person-type users get a
// personal company on the free plan named after them; business-type users
// must provide the company fields and get the requested plan. User, company
// and the creator's admin membership are written in one transaction.
func (s *UserService) Register(input RegisterInput) (*models.User, *models.Company, error) {
	if !utils.ValidatePassword(input.Password) {
		return nil, nil, ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.FindByCPF(input.CPF); err == nil {
		return nil, nil, ErrCPFTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check cpf: %w", err)
	}

	company := &models.Company{}
	switch input.UserType {
	case models.UserTypeBusiness:
		if strings.TrimSpace(input.CompanyName) == "" ||
			strings.TrimSpace(input.CNPJ) == "" ||
			strings.TrimSpace(input.PositionCompany) == "" {
			return nil, nil, ErrBusinessFieldsRequired
		}

		if _, err := s.companyRepo.FindByCNPJ(input.CNPJ); err == nil {
			return nil, nil, ErrCNPJTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("failed to check cnpj: %w", err)
		}

		cnpj := input.CNPJ
		position := input.PositionCompany
		company.CompanyName = input.CompanyName
		company.CNPJ = &cnpj
		company.PositionCompany = &position
		company.SubscriptionPlan = input.SubscriptionPlan
	default:
		company.CompanyName = input.Name
		company.SubscriptionPlan = models.PlanFree
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hashedPassword),
		CPF:          input.CPF,
		UserType:     input.UserType,
	}

	member := &models.CompanyMember{
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	}

	if err := s.userRepo.CreateWithCompany(user, company, member); err != nil {
		switch {
		case errors.Is(err, repository.ErrCreateUser):
			return nil, nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateCompany):
			return nil, nil, ErrFailedToCreateCompany
		case errors.Is(err, repository.ErrCreateMembership):
			return nil, nil, ErrFailedToAddMember
		default:
			return nil, nil, fmt.Errorf("failed to complete registration: %w", err)
		}
	}

	return user, company, nil
}

// ListUsers returns users, optionally only the members of one company.
func (s *UserService) ListUsers(companyID *uint64) ([]models.User, error) {
	users, err := s.userRepo.List(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user with their company memberships.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

// UpdateProfile updates name and phone; other fields are immutable here.
func (s *UserService) UpdateProfile(id uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// AddToCompanyInput represents a request to add a user to a company.
type AddToCompanyInput struct {
	ActorID   uint64
	CompanyID uint64
	Email     string
	Role      models.CompanyRole

	// Provisioning fields, required only when the email has no account yet.
	Name     string
	Phone    string
	CPF      string
	UserType models.UserType
}

// AddToCompany adds an existing or newly provisioned user to a company. The
// actor must hold an admin membership in the target company. Unknown emails
// get an account with a generated temporary password, sent by email.
func (s *UserService) AddToCompany(input AddToCompanyInput) (*models.User, *models.Company, error) {
	company, err := s.companyRepo.FindByID(input.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCompanyNotFound
		}
		return nil, nil, fmt.Errorf("failed to find company: %w", err)
	}

	actor, err := s.companyRepo.FindMember(input.CompanyID, input.ActorID)
	if err != nil || actor.Role != models.RoleAdmin {
		return nil, nil, ErrNotCompanyAdmin
	}

	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("failed to find user: %w", err)
		}
		user, err = s.provisionUser(input, company)
		if err != nil {
			return nil, nil, err
		}
	}

	if _, err := s.companyRepo.FindMember(input.CompanyID, user.ID); err == nil {
		return nil, nil, ErrAlreadyCompanyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.CompanyMember{
		CompanyID: input.CompanyID,
		UserID:    user.ID,
		Role:      input.Role,
		JoinedAt:  time.Now(),
	}
	if err := s.companyRepo.AddMember(member); err != nil {
		return nil, nil, fmt.Errorf("failed to add member: %w", err)
	}

	return user, company, nil
}

// provisionUser creates an account with a random temporary password and
// sends the onboarding email.
func (s *UserService) provisionUser(input AddToCompanyInput, company *models.Company) (*models.User, error) {
	if input.Name == "" || input.Phone == "" || input.CPF == "" || input.UserType == "" {
		return nil, ErrProvisionFieldsMissing
	}

	tempPassword, err := utils.GenerateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate temporary password: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hashedPassword),
		CPF:          input.CPF,
		UserType:     input.UserType,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	if s.mailer != nil {
		subject := "Welcome to Obra Fácil - You were added to a company"
		if err := s.mailer.Send(input.Email, subject, OnboardingEmail(company.CompanyName, tempPassword)); err != nil {
			// Account creation stands even when delivery fails; the caller
			// can resend through the email endpoint.
			log.Printf("failed to send onboarding email to %s: %v", input.Email, err)
		}
	}

	return user, nil
}

// ChangePassword replaces the user's password after checking the current one.
func (s *UserService) ChangePassword(userID uint64, currentPassword, newPassword string) error {
	if currentPassword == newPassword {
		return ErrSamePassword
	}
	if !utils.ValidatePassword(newPassword) {
		return ErrWeakPassword
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
