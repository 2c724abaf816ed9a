package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/obrafacil/obrafacil-api/internal/auth"
	"github.com/obrafacil/obrafacil-api/internal/constants"
	"github.com/obrafacil/obrafacil-api/internal/dto"
	apierrors "github.com/obrafacil/obrafacil-api/internal/errors"
	"github.com/obrafacil/obrafacil-api/internal/middleware"
	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/services"
)

// UserHandler coordinates user and membership HTTP handlers.
type UserHandler struct {
	userService *services.UserService
	tokens      *auth.TokenManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{
		userService: userService,
		tokens:      tokens,
	}
}

// Register creates a user and their company, then issues a bearer token so
// the client is signed in right away.
func (h *UserHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name             string `json:"name" binding:"required"`
		Email            string `json:"email" binding:"required,email"`
		Phone            string `json:"phone" binding:"required"`
		Password         string `json:"password" binding:"required"`
		CPF              string `json:"cpf" binding:"required"`
		UserType         string `json:"user_type" binding:"required,oneof=person business"`
		SubscriptionPlan string `json:"subscription_plan" binding:"omitempty,oneof=free basic premium"`
		CompanyName      string `json:"company_name"`
		CNPJ             string `json:"cnpj"`
		PositionCompany  string `json:"position_company"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if models.UserType(req.UserType) == models.UserTypeBusiness {
		var fields []apierrors.FieldError
		if req.CompanyName == "" {
			fields = append(fields, apierrors.FieldError{Field: "company_name", Message: "required for business accounts"})
		}
		if req.CNPJ == "" {
			fields = append(fields, apierrors.FieldError{Field: "cnpj", Message: "required for business accounts"})
		}
		if req.PositionCompany == "" {
			fields = append(fields, apierrors.FieldError{Field: "position_company", Message: "required for business accounts"})
		}
		if len(fields) > 0 {
			apierrors.ValidationFailed(c, fields)
			return
		}
	}

	plan := models.SubscriptionPlan(req.SubscriptionPlan)
	if plan == "" {
		plan = models.PlanFree
	}

	user, _, err := h.userService.Register(services.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Password:         req.Password,
		CPF:              req.CPF,
		UserType:         models.UserType(req.UserType),
		SubscriptionPlan: plan,
		CompanyName:      req.CompanyName,
		CNPJ:             req.CNPJ,
		PositionCompany:  req.PositionCompany,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	// Reload so the response carries the freshly created membership.
	user, err = h.userService.GetUser(user.ID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	memberships := make([]auth.MembershipClaim, 0, len(user.Memberships))
	for _, m := range user.Memberships {
		memberships = append(memberships, auth.MembershipClaim{
			CompanyID: m.CompanyID,
			Role:      m.Role,
		})
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email, memberships, constants.TokenExpiry)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserDTO(*user),
	})
}

// ListUsers returns users. With company_id it returns that company's members
// and requires the caller to belong to the company.
func (h *UserHandler) ListUsers(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var companyID *uint64
	if raw := c.Query("company_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid company_id")
			return
		}
		if !claims.HasCompany(id) {
			apierrors.Forbidden(c, "You are not a member of this company")
			return
		}
		companyID = &id
	} else {
		apierrors.BadRequest(c, "company_id is required")
		return
	}

	users, err := h.userService.ListUsers(companyID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	items := make([]dto.UserDTO, len(users))
	for i, u := range users {
		items[i] = dto.ToUserDTO(u)
	}
	c.JSON(http.StatusOK, gin.H{"users": items})
}

// GetUser returns one user. Callers may read themselves or anyone sharing a
// company with them.
func (h *UserHandler) GetUser(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	if user.ID != claims.UserID && !sharesCompany(claims, user) {
		apierrors.Forbidden(c, "You do not share a company with this user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateProfile updates the caller's name and phone.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(userID, services.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ChangePassword replaces the caller's password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// AddToCompany adds an existing or newly provisioned user to a company.
// Only company admins may call this.
func (h *UserHandler) AddToCompany(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	companyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company id")
		return
	}

	type AddUserRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Role     string `json:"role" binding:"required,oneof=admin team client"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		CPF      string `json:"cpf"`
		UserType string `json:"user_type" binding:"omitempty,oneof=person business"`
	}

	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, _, err := h.userService.AddToCompany(services.AddToCompanyInput{
		ActorID:   userID,
		CompanyID: companyID,
		Email:     req.Email,
		Role:      models.CompanyRole(req.Role),
		Name:      req.Name,
		Phone:     req.Phone,
		CPF:       req.CPF,
		UserType:  models.UserType(req.UserType),
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// sharesCompany reports whether the caller and the target user have a company
// in common.
func sharesCompany(claims *auth.Claims, user *models.User) bool {
	for _, m := range user.Memberships {
		if claims.HasCompany(m.CompanyID) {
			return true
		}
	}
	return false
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrBusinessFieldsRequired),
		errors.Is(err, services.ErrProvisionFieldsMissing),
		errors.Is(err, services.ErrSamePassword):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrWrongPassword):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrCPFTaken),
		errors.Is(err, services.ErrCNPJTaken),
		errors.Is(err, services.ErrAlreadyCompanyMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotCompanyAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCompanyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToCreateUser),
		errors.Is(err, services.ErrFailedToCreateCompany),
		errors.Is(err, services.ErrFailedToAddMember):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
