package models

import "time"

// MoneyLog is a free-form dated note with optional image attachments.
type MoneyLog struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Date      time.Time `gorm:"index;not null"`
	Content   string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User   User            `gorm:"constraint:OnDelete:CASCADE"`
	Images []MoneyLogImage `gorm:"constraint:OnDelete:CASCADE"`
}

// MoneyLogImage is one uploaded image, exclusively owned by its MoneyLog.
// StoreFilename is derived from the upload URL, never supplied by callers.
type MoneyLogImage struct {
	ID            uint   `gorm:"primaryKey"`
	MoneyLogID    uint   `gorm:"index;not null"`
	ImageURL      string `gorm:"size:512;not null"`
	StoreFilename string `gorm:"size:255"`
	CreatedAt     time.Time
}
