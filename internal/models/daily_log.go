package models

import "time"

const (
	FlowNone   = "none"
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const (
	MoodHappy     = "happy"
	MoodNeutral   = "neutral"
	MoodSad       = "sad"
	MoodIrritated = "irritated"
)

// DailyLog is one user's wellness entry for a calendar day. Mood is empty
// when it was not recorded.
type DailyLog struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"not null;uniqueIndex:uidx_daily_logs_user_date"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uidx_daily_logs_user_date"`
	Flow       string    `gorm:"not null;default:none"`
	Mood       string    `gorm:"not null;default:''"`
	SymptomIDs []uint    `gorm:"serializer:json"`
	Notes      string    `gorm:"not null;default:''"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
