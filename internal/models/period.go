package models

import "time"

// Period is one logged menstrual period. EndDate is nil while it is ongoing.
type Period struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;index:idx_periods_user_start"`
	StartDate time.Time  `gorm:"type:date;not null;index:idx_periods_user_start"`
	EndDate   *time.Time `gorm:"type:date"`
	Notes     string     `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
