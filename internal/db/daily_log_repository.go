package db

import (
	"time"

	"github.com/saukhya-health/saukhya/internal/models"
	"gorm.io/gorm"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListByUser(userID uint) ([]models.DailyLog, error) {
	return repo.ListByUserRange(userID, nil, nil)
}

// ListByUserRange returns logs with fromStart <= date < toEnd in date order.
// A nil bound is open.
func (repo *DailyLogRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error) {
	query := repo.database.Model(&models.DailyLog{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	logs := make([]models.DailyLog, 0)
	if err := query.Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByUserAndDay(userID uint, day time.Time) (models.DailyLog, bool, error) {
	dayStart, dayEnd := dayBounds(day)
	entry := models.DailyLog{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *DailyLogRepository) Create(entry *models.DailyLog) error {
	return repo.database.Create(entry).Error
}

func (repo *DailyLogRepository) Save(entry *models.DailyLog) error {
	return repo.database.Save(entry).Error
}

func (repo *DailyLogRepository) UpdateSymptomIDs(entry *models.DailyLog) error {
	return repo.database.Model(entry).Select("symptom_ids").Updates(entry).Error
}

func (repo *DailyLogRepository) DeleteByUserAndDay(userID uint, day time.Time) (bool, error) {
	dayStart, dayEnd := dayBounds(day)
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Delete(&models.DailyLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *DailyLogRepository) DeleteAllByUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.DailyLog{}).Error
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	year, month, date := day.Date()
	start := time.Date(year, month, date, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
