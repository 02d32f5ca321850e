package database

import (
	"fmt"

	"github.com/ehgns852/moamoa/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.AssetCategory{},
		&models.Budget{},
		&models.ExpenditureRatio{},
		&models.RevenueExpenditure{},
		&models.AssetGoal{},
		&models.MoneyLog{},
		&models.MoneyLogImage{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
