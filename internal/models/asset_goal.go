package models

import "time"

// AssetGoal is a per-day savings goal. At most one row per (user, date);
// the composite unique index backs the upsert.
type AssetGoal struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_asset_goals_user_date;not null"`
	Date      time.Time `gorm:"uniqueIndex:idx_asset_goals_user_date;not null"`
	Content   string    `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
