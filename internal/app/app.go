package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"projecthub_backend/internal/auth"
	"projecthub_backend/internal/config"
	"projecthub_backend/internal/database"
	"projecthub_backend/internal/email"
	"projecthub_backend/internal/handlers"
	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/middleware"
	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/routes"
	"projecthub_backend/internal/services"
	"projecthub_backend/internal/validator"
	"projecthub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedDemoUsers(gormDB); err != nil {
		logger.Fatal("Failed to seed demo users", "error", err)
	}

	serviceContainer := initializeServices(cfg)
	ginRouter := SetupRouter(gormDB, serviceContainer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, cfg, gormDB, serviceContainer)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine over the given DB handle. The test
// harness calls this directly with its own connection.
func SetupRouter(gormDB *gorm.DB, serviceContainer *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider = email.NewSMTPProvider(cfg)
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		emailProvider = email.NewMockProvider()
		logger.Warn("SMTP host not configured, using mock email provider")
	}

	return services.NewServiceContainer(emailProvider)
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	return handlers.NewAppHandlers(serviceContainer, customValidator)
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, sc *services.ServiceContainer) {
	interval := time.Duration(cfg.Workers.DueCheckMinutes) * time.Minute
	worker := workers.NewDueDateWorker(
		gormDB,
		repositories.NewTaskRepository(),
		repositories.NewNotificationRepository(),
		sc.Notifications,
		interval,
	)
	go worker.Run(ctx)
}

// seedDemoUsers creates the three demo accounts and a sample project on an
// empty database. Existing rows are left alone.
func seedDemoUsers(db *gorm.DB) error {
	demo := []struct {
		name  string
		email string
	}{
		{"John Doe", "john.doe@example.com"},
		{"Jane Smith", "jane.smith@example.com"},
		{"Mike Wilson", "mike.wilson@example.com"},
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := make([]*models.User, 0, len(demo))
		created := false

		for _, d := range demo {
			var user models.User
			err := tx.Where("email = ?", d.email).First(&user).Error
			switch {
			case err == nil:
				users = append(users, &user)
				continue
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}

			user = models.User{Name: d.name, Email: d.email, PasswordHash: hash}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			users = append(users, &user)
			created = true
		}

		if !created {
			return nil
		}

		project := &models.Project{
			Name:        "Sample Project",
			Description: "A sample project for testing",
			Status:      models.ProjectStatusActive,
			CreatedByID: users[0].ID,
		}
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		members := []models.ProjectMember{
			{ProjectID: project.ID, UserID: users[0].ID, Role: models.RoleOwner},
			{ProjectID: project.ID, UserID: users[1].ID, Role: models.RoleMember},
			{ProjectID: project.ID, UserID: users[2].ID, Role: models.RoleMember},
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}

		logger.Info("Seeded demo users and sample project")
		return nil
	})
}
