package database

import (
	"fmt"

	"projecthub_backend/internal/config"
	"projecthub_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens the GORM connection using the configured DSN.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	// TranslateError turns driver-level unique violations into
	// gorm.ErrDuplicatedKey, which the repositories map to domain errors.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates all models. The ProjectMember unique index on
// (project_id, user_id) is what turns duplicate-add races into a constraint
// violation instead of a second row.
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults on BaseModel need the extension present.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to enable uuid-ossp: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Comment{},
		&models.ProjectDiscussion{},
		&models.Notification{},
	)
}
