package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/projtrack/project-tracker-api/internal/config"
	"github.com/projtrack/project-tracker-api/internal/constants"
	"github.com/projtrack/project-tracker-api/internal/database"
	"github.com/projtrack/project-tracker-api/internal/handlers"
	"github.com/projtrack/project-tracker-api/internal/middleware"
	"github.com/projtrack/project-tracker-api/internal/repository"
	"github.com/projtrack/project-tracker-api/internal/services"
	"github.com/projtrack/project-tracker-api/internal/token"
)

func main() {
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

	// Index creation reads pg_indexes, postgres only
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Token issuer owns the signing secret for the process lifetime
	issuer := token.NewIssuer(cfg.JWTSecret, constants.TokenTTL)

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	projectRepo := repository.NewProjectRepository(database.GetDB())
	authService := services.NewAuthService(userRepo, issuer)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectRepo)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Tracker API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (register/login public, user lookup protected)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/user", middleware.RequireAuth(issuer), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(issuer))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/stats", projectHandler.GetProjectStats)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
