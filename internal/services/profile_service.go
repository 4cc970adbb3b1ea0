package services

import (
	"errors"
	"fmt"

	"github.com/saukhya-health/saukhya/internal/cycle"
	"github.com/saukhya-health/saukhya/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCycleLengthOutOfRange  = errors.New("cycle length out of range")
	ErrPeriodLengthOutOfRange = errors.New("period length out of range")
	ErrProfileUserNotFound    = errors.New("profile user not found")
)

const (
	MinCycleLength  = 15
	MaxCycleLength  = 90
	MinPeriodLength = 1
	MaxPeriodLength = 14
)

type ProfileUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateCycleProfile(userID uint, cycleLength int, periodLength int) error
}

type ProfileService struct {
	users ProfileUserRepository
}

func NewProfileService(users ProfileUserRepository) *ProfileService {
	return &ProfileService{users: users}
}

func IsValidCycleLength(value int) bool {
	return value >= MinCycleLength && value <= MaxCycleLength
}

func IsValidPeriodLength(value int) bool {
	return value >= MinPeriodLength && value <= MaxPeriodLength
}

func ValidateCycleProfile(profile cycle.Profile) error {
	if !IsValidCycleLength(profile.CycleLengthDays) {
		return ErrCycleLengthOutOfRange
	}
	if !IsValidPeriodLength(profile.PeriodDurationDays) {
		return ErrPeriodLengthOutOfRange
	}
	return nil
}

// ProfileFromUser reads the declared baseline, replacing stored values that
// fall outside the accepted ranges with defaults.
func ProfileFromUser(user models.User) cycle.Profile {
	profile := cycle.DefaultProfile()
	if IsValidCycleLength(user.CycleLength) {
		profile.CycleLengthDays = user.CycleLength
	}
	if IsValidPeriodLength(user.PeriodLength) {
		profile.PeriodDurationDays = user.PeriodLength
	}
	return profile
}

func (service *ProfileService) Get(userID uint) (cycle.Profile, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cycle.Profile{}, ErrProfileUserNotFound
	}
	if err != nil {
		return cycle.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return ProfileFromUser(user), nil
}

func (service *ProfileService) Update(userID uint, profile cycle.Profile) (cycle.Profile, error) {
	if err := ValidateCycleProfile(profile); err != nil {
		return cycle.Profile{}, err
	}
	err := service.users.UpdateCycleProfile(userID, profile.CycleLengthDays, profile.PeriodDurationDays)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cycle.Profile{}, ErrProfileUserNotFound
	}
	if err != nil {
		return cycle.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}
