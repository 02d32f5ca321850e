package models

import "time"

// Budget is the single monthly budget amount per user.
// The unique index on user_id backs the insert-or-update upsert and
// closes the duplicate-singleton race between concurrent requests.
type Budget struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    uint  `gorm:"uniqueIndex;not null"`
	Amount    int64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
