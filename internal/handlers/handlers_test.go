package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/obrafacil/obrafacil-api/internal/auth"
	"github.com/obrafacil/obrafacil-api/internal/constants"
	"github.com/obrafacil/obrafacil-api/internal/database"
	"github.com/obrafacil/obrafacil-api/internal/middleware"
	"github.com/obrafacil/obrafacil-api/internal/models"
	"github.com/obrafacil/obrafacil-api/internal/repository"
	"github.com/obrafacil/obrafacil-api/internal/services"
	"github.com/obrafacil/obrafacil-api/internal/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func requireAuthFor(tm *auth.TokenManager) gin.HandlerFunc {
	return middleware.RequireAuth(tm)
}

// apiTestEnv wires the full route table against an in-memory database, the
// same way the server binary does.
type apiTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenManager
}

func setupAPITestEnv(t *testing.T) apiTestEnv {
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

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	logRepo := repository.NewConstructionLogRepository(db)

	tokens := auth.NewTokenManager("test-secret", "obrafacil-test")

	authHandler := NewAuthHandler(services.NewAuthService(userRepo, companyRepo), tokens)
	userHandler := NewUserHandler(services.NewUserService(userRepo, companyRepo, nil), tokens)
	projectHandler := NewProjectHandler(services.NewProjectService(projectRepo))
	employeeHandler := NewEmployeeHandler(services.NewEmployeeService(employeeRepo, projectRepo))
	equipmentHandler := NewEquipmentHandler(services.NewEquipmentService(equipmentRepo))
	logHandler := NewConstructionLogHandler(services.NewConstructionLogService(logRepo, projectRepo, employeeRepo, equipmentRepo))

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)

		api.POST("/users", userHandler.Register)
		api.GET("/users", middleware.RequireAuth(tokens), userHandler.ListUsers)
		api.GET("/users/:id", middleware.RequireAuth(tokens), userHandler.GetUser)
		api.PUT("/users/me", middleware.RequireAuth(tokens), userHandler.UpdateProfile)
		api.PUT("/users/me/password", middleware.RequireAuth(tokens), userHandler.ChangePassword)

		api.POST("/companies/:id/users", middleware.RequireAuth(tokens), userHandler.AddToCompany)

		projects := api.Group("/projects", middleware.RequireAuth(tokens))
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/construction-logs", logHandler.ListLogs)
			projects.GET("/:id/hours-report", employeeHandler.HoursReport)
		}

		employees := api.Group("/employees", middleware.RequireAuth(tokens))
		{
			employees.POST("", employeeHandler.CreateEmployee)
			employees.GET("", employeeHandler.ListEmployees)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		equipment := api.Group("/equipment", middleware.RequireAuth(tokens))
		{
			equipment.POST("", equipmentHandler.CreateEquipment)
			equipment.GET("", equipmentHandler.ListEquipment)
			equipment.GET("/:id", equipmentHandler.GetEquipment)
			equipment.PUT("/:id", equipmentHandler.UpdateEquipment)
		}

		logs := api.Group("/construction-logs", middleware.RequireAuth(tokens))
		{
			logs.POST("", logHandler.CreateLog)
			logs.GET("/:id", logHandler.GetLog)
			logs.PUT("/:id", logHandler.UpdateLog)
		}
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return apiTestEnv{
		db:     db,
		router: r,
		tokens: tokens,
	}
}

// seedMember creates a user with an admin membership in a fresh company and
// returns a valid bearer token for them.
func (env apiTestEnv) seedMember(t *testing.T, email, cpf string) (*models.User, *models.Company, string) {
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
	require.NoError(t, env.db.Create(user).Error)

	company := &models.Company{
		CompanyName:      user.Name,
		SubscriptionPlan: models.PlanFree,
		OwnerID:          user.ID,
	}
	require.NoError(t, env.db.Create(company).Error)
	require.NoError(t, env.db.Create(&models.CompanyMember{
		CompanyID: company.ID,
		UserID:    user.ID,
		Role:      models.RoleAdmin,
		JoinedAt:  time.Now(),
	}).Error)

	token, err := env.tokens.GenerateToken(user.ID, user.Email, []auth.MembershipClaim{
		{CompanyID: company.ID, Role: models.RoleAdmin},
	}, constants.TokenExpiry)
	require.NoError(t, err)

	return user, company, token
}

func (env apiTestEnv) request(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := utils.ParseDayStart(value)
	require.NoError(t, err)
	return d
}
