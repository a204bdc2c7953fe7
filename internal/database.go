package internal

import (
	"fmt"

	"LF-ADMIN/internal/config"
	"LF-ADMIN/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// dialector picks the gorm driver for the configured database
func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.DSN()
	switch cfg.Driver {
	case "postgres", "":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func InitDB(cfg *config.Config) error {
	dial, err := dialector(&cfg.Database)
	if err != nil {
		return err
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.Server.Environment == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	DB, err = gorm.Open(dial, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Migrate creates or updates every table the backend owns
func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.FieldDefinition{},
		&models.LeadForm{},
		&models.Bank{},
		&models.User{},
		&models.Form16{},
		&models.Banner{},
		&models.SubAgent{},
		&models.FranchiseCommissionLimit{},
		&models.Invoice{},
		&models.ActivityLog{},
	}
	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", table, err)
		}
	}

	// Lookups by (lead_type, bank_id, active) back the one-active-form rule
	if !db.Migrator().HasIndex(&models.LeadForm{}, "idx_lead_forms_target") {
		if err := db.Exec("CREATE INDEX idx_lead_forms_target ON lead_forms (lead_type, bank_id, active)").Error; err != nil {
			return fmt.Errorf("failed to create lead form target index: %w", err)
		}
	}
	return nil
}

func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
