package services

import (
	"sort"
	"testing"
	"time"

	"github.com/saukhya-health/saukhya/internal/models"
	"gorm.io/gorm"
)

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

func dayPtr(t *testing.T, raw string) *time.Time {
	t.Helper()
	day := mustParseDay(t, raw)
	return &day
}

type stubUserRepository struct {
	users   []models.User
	nextID  uint
	findErr error
	listErr error
}

func (stub *stubUserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubUserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *stubUserRepository) FindByID(userID uint) (models.User, error) {
	if stub.findErr != nil {
		return models.User{}, stub.findErr
	}
	for _, user := range stub.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *stubUserRepository) Create(user *models.User) error {
	stub.nextID++
	user.ID = stub.nextID
	stub.users = append(stub.users, *user)
	return nil
}

func (stub *stubUserRepository) UpdateCycleProfile(userID uint, cycleLength int, periodLength int) error {
	for index := range stub.users {
		if stub.users[index].ID == userID {
			stub.users[index].CycleLength = cycleLength
			stub.users[index].PeriodLength = periodLength
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (stub *stubUserRepository) ListAll() ([]models.User, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.User, len(stub.users))
	copy(result, stub.users)
	return result, nil
}

type stubPeriodRepository struct {
	periods []models.Period
	nextID  uint
	listErr error
}

func (stub *stubPeriodRepository) ListByUser(userID uint) ([]models.Period, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.Period, 0, len(stub.periods))
	for _, period := range stub.periods {
		if period.UserID == userID {
			result = append(result, period)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

func (stub *stubPeriodRepository) FindByUserAndID(userID uint, periodID uint) (models.Period, bool, error) {
	for _, period := range stub.periods {
		if period.UserID == userID && period.ID == periodID {
			return period, true, nil
		}
	}
	return models.Period{}, false, nil
}

func (stub *stubPeriodRepository) Create(period *models.Period) error {
	stub.nextID++
	period.ID = stub.nextID
	stub.periods = append(stub.periods, *period)
	return nil
}

func (stub *stubPeriodRepository) Save(period *models.Period) error {
	for index := range stub.periods {
		if stub.periods[index].ID == period.ID {
			stub.periods[index] = *period
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (stub *stubPeriodRepository) DeleteByUserAndID(userID uint, periodID uint) (bool, error) {
	for index, period := range stub.periods {
		if period.UserID == userID && period.ID == periodID {
			stub.periods = append(stub.periods[:index], stub.periods[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubPeriodRepository) DeleteAllByUser(userID uint) error {
	kept := stub.periods[:0]
	for _, period := range stub.periods {
		if period.UserID != userID {
			kept = append(kept, period)
		}
	}
	stub.periods = kept
	return nil
}

func (stub *stubPeriodRepository) add(t *testing.T, userID uint, start string, end string) {
	t.Helper()
	period := models.Period{UserID: userID, StartDate: mustParseDay(t, start)}
	if end != "" {
		period.EndDate = dayPtr(t, end)
	}
	if err := stub.Create(&period); err != nil {
		t.Fatalf("seed period: %v", err)
	}
}

type stubDailyLogRepository struct {
	logs    []models.DailyLog
	nextID  uint
	listErr error
}

func (stub *stubDailyLogRepository) ListByUser(userID uint) ([]models.DailyLog, error) {
	return stub.ListByUserRange(userID, nil, nil)
}

func (stub *stubDailyLogRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.DailyLog, 0, len(stub.logs))
	for _, entry := range stub.logs {
		if entry.UserID != userID {
			continue
		}
		if fromStart != nil && entry.Date.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !entry.Date.Before(*toEnd) {
			continue
		}
		result = append(result, entry)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (stub *stubDailyLogRepository) FindByUserAndDay(userID uint, day time.Time) (models.DailyLog, bool, error) {
	for _, entry := range stub.logs {
		if entry.UserID == userID && entry.Date.Equal(day) {
			return entry, true, nil
		}
	}
	return models.DailyLog{}, false, nil
}

func (stub *stubDailyLogRepository) Create(entry *models.DailyLog) error {
	stub.nextID++
	entry.ID = stub.nextID
	stub.logs = append(stub.logs, *entry)
	return nil
}

func (stub *stubDailyLogRepository) Save(entry *models.DailyLog) error {
	for index := range stub.logs {
		if stub.logs[index].ID == entry.ID {
			stub.logs[index] = *entry
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (stub *stubDailyLogRepository) UpdateSymptomIDs(entry *models.DailyLog) error {
	for index := range stub.logs {
		if stub.logs[index].ID == entry.ID {
			stub.logs[index].SymptomIDs = entry.SymptomIDs
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (stub *stubDailyLogRepository) DeleteByUserAndDay(userID uint, day time.Time) (bool, error) {
	for index, entry := range stub.logs {
		if entry.UserID == userID && entry.Date.Equal(day) {
			stub.logs = append(stub.logs[:index], stub.logs[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubDailyLogRepository) DeleteAllByUser(userID uint) error {
	kept := stub.logs[:0]
	for _, entry := range stub.logs {
		if entry.UserID != userID {
			kept = append(kept, entry)
		}
	}
	stub.logs = kept
	return nil
}

func (stub *stubDailyLogRepository) add(t *testing.T, userID uint, day string, entry models.DailyLog) {
	t.Helper()
	entry.UserID = userID
	entry.Date = mustParseDay(t, day)
	if err := stub.Create(&entry); err != nil {
		t.Fatalf("seed daily log: %v", err)
	}
}

type stubSymptomRepository struct {
	symptoms []models.SymptomType
	nextID   uint
}

func (stub *stubSymptomRepository) CountByUserAndIDs(userID uint, ids []uint) (int64, error) {
	var count int64
	for _, symptom := range stub.symptoms {
		if symptom.UserID != userID {
			continue
		}
		for _, id := range ids {
			if symptom.ID == id {
				count++
			}
		}
	}
	return count, nil
}

func (stub *stubSymptomRepository) ListByUser(userID uint) ([]models.SymptomType, error) {
	result := make([]models.SymptomType, 0, len(stub.symptoms))
	for _, symptom := range stub.symptoms {
		if symptom.UserID == userID {
			result = append(result, symptom)
		}
	}
	return result, nil
}

func (stub *stubSymptomRepository) Create(symptom *models.SymptomType) error {
	stub.nextID++
	symptom.ID = stub.nextID
	stub.symptoms = append(stub.symptoms, *symptom)
	return nil
}

func (stub *stubSymptomRepository) CreateBatch(symptoms []models.SymptomType) error {
	for index := range symptoms {
		if err := stub.Create(&symptoms[index]); err != nil {
			return err
		}
	}
	return nil
}

func (stub *stubSymptomRepository) FindByUserAndID(userID uint, symptomID uint) (models.SymptomType, bool, error) {
	for _, symptom := range stub.symptoms {
		if symptom.UserID == userID && symptom.ID == symptomID {
			return symptom, true, nil
		}
	}
	return models.SymptomType{}, false, nil
}

func (stub *stubSymptomRepository) Delete(symptom *models.SymptomType) error {
	for index := range stub.symptoms {
		if stub.symptoms[index].ID == symptom.ID {
			stub.symptoms = append(stub.symptoms[:index], stub.symptoms[index+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
