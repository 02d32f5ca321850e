package models

import "time"

// ExpenditureRatio is the fixed/variable spending split per user.
// Fixed + Variable must equal 100; validated in the service layer
// before anything is written.
type ExpenditureRatio struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex;not null"`
	Fixed     int  `gorm:"not null"`
	Variable  int  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
