package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CycleLength  int       `gorm:"not null;default:28"`
	PeriodLength int       `gorm:"not null;default:5"`
	CreatedAt    time.Time `gorm:"not null"`
}
