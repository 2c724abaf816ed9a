package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/obrafacil/obrafacil-api/internal/auth"
	"github.com/obrafacil/obrafacil-api/internal/config"
	"github.com/obrafacil/obrafacil-api/internal/database"
	"github.com/obrafacil/obrafacil-api/internal/handlers"
	"github.com/obrafacil/obrafacil-api/internal/mailer"
	"github.com/obrafacil/obrafacil-api/internal/middleware"
	"github.com/obrafacil/obrafacil-api/internal/repository"
	"github.com/obrafacil/obrafacil-api/internal/services"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// pg_indexes is postgres-only, so the extra indexes are skipped on mysql
	if cfg.DBDriver == "postgres" {
		if err := database.MigrateDatabase(db); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	logRepo := repository.NewConstructionLogRepository(db)

	// Token manager and mailer
	tokens := auth.NewTokenManager(cfg.JWTSecret, "obrafacil")
	smtp := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)

	// Services
	authService := services.NewAuthService(userRepo, companyRepo)
	userService := services.NewUserService(userRepo, companyRepo, smtp)
	projectService := services.NewProjectService(projectRepo)
	employeeService := services.NewEmployeeService(employeeRepo, projectRepo)
	equipmentService := services.NewEquipmentService(equipmentRepo)
	logService := services.NewConstructionLogService(logRepo, projectRepo, employeeRepo, equipmentRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	userHandler := handlers.NewUserHandler(userService, tokens)
	projectHandler := handlers.NewProjectHandler(projectService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	equipmentHandler := handlers.NewEquipmentHandler(equipmentService)
	logHandler := handlers.NewConstructionLogHandler(logService)
	emailHandler := handlers.NewEmailHandler(smtp)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Obra Facil API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
		}

		// User routes
		users := api.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.GET("", middleware.RequireAuth(tokens), userHandler.ListUsers)
			users.GET("/:id", middleware.RequireAuth(tokens), userHandler.GetUser)
			users.PUT("/me", middleware.RequireAuth(tokens), userHandler.UpdateProfile)
			users.PUT("/me/password", middleware.RequireAuth(tokens), userHandler.ChangePassword)
		}

		// Company routes (protected)
		companies := api.Group("/companies")
		companies.Use(middleware.RequireAuth(tokens))
		{
			companies.POST("/:id/users", userHandler.AddToCompany)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/construction-logs", logHandler.ListLogs)
			projects.GET("/:id/hours-report", employeeHandler.HoursReport)
		}

		// Employee routes (protected)
		employees := api.Group("/employees")
		employees.Use(middleware.RequireAuth(tokens))
		{
			employees.POST("", employeeHandler.CreateEmployee)
			employees.GET("", employeeHandler.ListEmployees)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		// Equipment routes (protected)
		equipment := api.Group("/equipment")
		equipment.Use(middleware.RequireAuth(tokens))
		{
			equipment.POST("", equipmentHandler.CreateEquipment)
			equipment.GET("", equipmentHandler.ListEquipment)
			equipment.GET("/:id", equipmentHandler.GetEquipment)
			equipment.PUT("/:id", equipmentHandler.UpdateEquipment)
		}

		// Construction log routes (protected)
		logs := api.Group("/construction-logs")
		logs.Use(middleware.RequireAuth(tokens))
		{
			logs.POST("", logHandler.CreateLog)
			logs.GET("/:id", logHandler.GetLog)
			logs.PUT("/:id", logHandler.UpdateLog)
		}

		// Email routes (protected)
		emails := api.Group("/emails")
		emails.Use(middleware.RequireAuth(tokens))
		{
			emails.POST("", emailHandler.SendEmail)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
