package models

import "time"

// AssetCategory represents a user-defined revenue/expenditure category.
type AssetCategory struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"index;not null"`
	CategoryType string    `gorm:"size:16;index;not null"` // REVENUE / EXPENDITURE
	Name         string    `gorm:"size:64;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
