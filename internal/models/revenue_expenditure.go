package models

import "time"

// RevenueExpenditure is a single journal record. Records are append-only:
// there is no update or delete path. CategoryName is free text captured at
// entry time, deliberately not a foreign key into AssetCategory.
type RevenueExpenditure struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"index;not null"`
	Type          string    `gorm:"size:16;index;not null"` // REVENUE / EXPENDITURE
	Content       string    `gorm:"size:255"`
	Cost          int64     `gorm:"not null"`
	Date          time.Time `gorm:"index;not null"`
	CategoryName  string    `gorm:"size:64"`
	PaymentMethod string    `gorm:"size:32"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
