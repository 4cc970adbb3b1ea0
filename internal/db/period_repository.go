package db

import (
	"github.com/saukhya-health/saukhya/internal/models"
	"gorm.io/gorm"
)

type PeriodRepository struct {
	database *gorm.DB
}

func NewPeriodRepository(database *gorm.DB) *PeriodRepository {
	return &PeriodRepository{database: database}
}

func (repo *PeriodRepository) ListByUser(userID uint) ([]models.Period, error) {
	periods := make([]models.Period, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

// FindByUserAndID reports false when the period does not exist or belongs to
// another user.
func (repo *PeriodRepository) FindByUserAndID(userID uint, periodID uint) (models.Period, bool, error) {
	period := models.Period{}
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, periodID).
		Limit(1).
		Find(&period)
	if result.Error != nil {
		return models.Period{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Period{}, false, nil
	}
	return period, true, nil
}

func (repo *PeriodRepository) Create(period *models.Period) error {
	return repo.database.Create(period).Error
}

func (repo *PeriodRepository) Save(period *models.Period) error {
	return repo.database.Save(period).Error
}

func (repo *PeriodRepository) DeleteByUserAndID(userID uint, periodID uint) (bool, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, periodID).Delete(&models.Period{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *PeriodRepository) DeleteAllByUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.Period{}).Error
}
