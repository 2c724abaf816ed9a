package dto

import (
	"time"

	"github.com/obrafacil/obrafacil-api/internal/models"
)

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID               uint64                  `json:"id"`
	CompanyName      string                  `json:"company_name"`
	CNPJ             *string                 `json:"cnpj,omitempty"`
	PositionCompany  *string                 `json:"position_company,omitempty"`
	SubscriptionPlan models.SubscriptionPlan `json:"subscription_plan"`
	OwnerID          uint64                  `json:"owner_id"`
}

// MembershipDTO represents one company membership in API responses
type MembershipDTO struct {
	CompanyID uint64             `json:"company_id"`
	Role      models.CompanyRole `json:"role"`
	JoinedAt  time.Time          `json:"joined_at"`
	Company   *CompanyDTO        `json:"company,omitempty"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	CPF         string          `json:"cpf"`
	UserType    models.UserType `json:"user_type"`
	CreatedAt   time.Time       `json:"created_at"`
	Memberships []MembershipDTO `json:"memberships,omitempty"`
}

// AuthResponse is the login and registration payload
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// ToCompanyDTO converts a Company model to CompanyDTO
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:               company.ID,
		CompanyName:      company.CompanyName,
		CNPJ:             company.CNPJ,
		PositionCompany:  company.PositionCompany,
		SubscriptionPlan: company.SubscriptionPlan,
		OwnerID:          company.OwnerID,
	}
}

// ToMembershipDTO converts a CompanyMember model to MembershipDTO
func ToMembershipDTO(member models.CompanyMember) MembershipDTO {
	dto := MembershipDTO{
		CompanyID: member.CompanyID,
		Role:      member.Role,
		JoinedAt:  member.JoinedAt,
	}

	// Include company if preloaded
	if member.Company.ID != 0 {
		company := ToCompanyDTO(member.Company)
		dto.Company = &company
	}

	return dto
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		CPF:       user.CPF,
		UserType:  user.UserType,
		CreatedAt: user.CreatedAt,
	}

	if len(user.Memberships) > 0 {
		dto.Memberships = make([]MembershipDTO, len(user.Memberships))
		for i, m := range user.Memberships {
			dto.Memberships[i] = ToMembershipDTO(m)
		}
	}

	return dto
}
