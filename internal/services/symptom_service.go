package services

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/saukhya-health/saukhya/internal/models"
)

var (
	ErrInvalidSymptomID              = errors.New("invalid symptom id")
	ErrInvalidSymptomName            = errors.New("invalid symptom name")
	ErrInvalidSymptomColor           = errors.New("invalid symptom color")
	ErrSymptomNameTaken              = errors.New("symptom name already exists")
	ErrSymptomNotFound               = errors.New("symptom not found")
	ErrBuiltinSymptomDeleteForbidden = errors.New("built-in symptom cannot be deleted")
)

const (
	maxSymptomNameLength = 80
	defaultSymptomIcon   = "✨"
)

var hexSymptomColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type SymptomRepository interface {
	CountByUserAndIDs(userID uint, ids []uint) (int64, error)
	ListByUser(userID uint) ([]models.SymptomType, error)
	Create(symptom *models.SymptomType) error
	CreateBatch(symptoms []models.SymptomType) error
	FindByUserAndID(userID uint, symptomID uint) (models.SymptomType, bool, error)
	Delete(symptom *models.SymptomType) error
}

type SymptomLogRepository interface {
	ListByUser(userID uint) ([]models.DailyLog, error)
	UpdateSymptomIDs(entry *models.DailyLog) error
}

type SymptomService struct {
	symptoms SymptomRepository
	logs     SymptomLogRepository
}

// SymptomFrequency counts the logged days carrying one symptom.
type SymptomFrequency struct {
	SymptomID uint
	Name      string
	Icon      string
	Count     int
	TotalDays int
}

func NewSymptomService(symptoms SymptomRepository, logs SymptomLogRepository) *SymptomService {
	return &SymptomService{
		symptoms: symptoms,
		logs:     logs,
	}
}

// FetchSymptoms returns the user's catalog, built-in symptoms first in catalog
// order and then custom ones by name. Missing built-ins are created first.
func (service *SymptomService) FetchSymptoms(userID uint) ([]models.SymptomType, error) {
	if err := service.ensureBuiltinSymptoms(userID); err != nil {
		return nil, fmt.Errorf("seed built-in symptoms: %w", err)
	}
	symptoms, err := service.symptoms.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	SortSymptomsByBuiltinAndName(symptoms)
	return symptoms, nil
}

func (service *SymptomService) CreateSymptomForUser(userID uint, name string, icon string, color string) (models.SymptomType, error) {
	name = strings.TrimSpace(name)
	icon = strings.TrimSpace(icon)
	color = strings.TrimSpace(color)

	if name == "" || len([]rune(name)) > maxSymptomNameLength {
		return models.SymptomType{}, ErrInvalidSymptomName
	}
	if icon == "" {
		icon = defaultSymptomIcon
	}
	if !hexSymptomColorPattern.MatchString(color) {
		return models.SymptomType{}, ErrInvalidSymptomColor
	}

	existing, err := service.FetchSymptoms(userID)
	if err != nil {
		return models.SymptomType{}, err
	}
	for _, symptom := range existing {
		if symptomNameKey(symptom.Name) == symptomNameKey(name) {
			return models.SymptomType{}, ErrSymptomNameTaken
		}
	}

	symptom := models.SymptomType{
		UserID: userID,
		Name:   name,
		Icon:   icon,
		Color:  color,
	}
	if err := service.symptoms.Create(&symptom); err != nil {
		return models.SymptomType{}, fmt.Errorf("create symptom: %w", err)
	}
	return symptom, nil
}

// DeleteSymptomForUser removes a custom symptom and strips it from every
// daily log that references it.
func (service *SymptomService) DeleteSymptomForUser(userID uint, symptomID uint) error {
	symptom, found, err := service.symptoms.FindByUserAndID(userID, symptomID)
	if err != nil {
		return fmt.Errorf("load symptom: %w", err)
	}
	if !found {
		return ErrSymptomNotFound
	}
	if symptom.IsBuiltin {
		return ErrBuiltinSymptomDeleteForbidden
	}

	if err := service.symptoms.Delete(&symptom); err != nil {
		return fmt.Errorf("delete symptom: %w", err)
	}
	if err := service.removeSymptomFromLogs(userID, symptom.ID); err != nil {
		return fmt.Errorf("clean symptom logs: %w", err)
	}
	return nil
}

// ValidateSymptomIDs deduplicates ids, checks that each belongs to the user
// and returns them sorted.
func (service *SymptomService) ValidateSymptomIDs(userID uint, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return []uint{}, nil
	}

	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	filtered := make([]uint, 0, len(unique))
	for id := range unique {
		filtered = append(filtered, id)
	}

	matched, err := service.symptoms.CountByUserAndIDs(userID, filtered)
	if err != nil {
		return nil, err
	}
	if int(matched) != len(filtered) {
		return nil, ErrInvalidSymptomID
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i] < filtered[j] })
	return filtered, nil
}

// SymptomNames maps the user's symptom ids onto display names.
func (service *SymptomService) SymptomNames(userID uint) (map[uint]string, error) {
	symptoms, err := service.symptoms.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(symptoms))
	for _, symptom := range symptoms {
		names[symptom.ID] = symptom.Name
	}
	return names, nil
}

// CalculateFrequencies counts symptom occurrences across logs, most frequent
// first. TotalDays is the number of logs given.
func (service *SymptomService) CalculateFrequencies(userID uint, logs []models.DailyLog) ([]SymptomFrequency, error) {
	counts := make(map[uint]int)
	for _, entry := range logs {
		for _, id := range entry.SymptomIDs {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return []SymptomFrequency{}, nil
	}

	symptoms, err := service.symptoms.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	result := make([]SymptomFrequency, 0, len(counts))
	for _, symptom := range symptoms {
		if count, ok := counts[symptom.ID]; ok {
			result = append(result, SymptomFrequency{
				SymptomID: symptom.ID,
				Name:      symptom.Name,
				Icon:      symptom.Icon,
				Count:     count,
				TotalDays: len(logs),
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return result[i].Name < result[j].Name
		}
		return result[i].Count > result[j].Count
	})
	return result, nil
}

func (service *SymptomService) ensureBuiltinSymptoms(userID uint) error {
	existing, err := service.symptoms.ListByUser(userID)
	if err != nil {
		return err
	}
	existingByName := make(map[string]struct{}, len(existing))
	for _, symptom := range existing {
		if key := symptomNameKey(symptom.Name); key != "" {
			existingByName[key] = struct{}{}
		}
	}
	return service.symptoms.CreateBatch(MissingBuiltinSymptomsForUser(userID, existingByName))
}

func (service *SymptomService) removeSymptomFromLogs(userID uint, symptomID uint) error {
	logs, err := service.logs.ListByUser(userID)
	if err != nil {
		return err
	}

	for index := range logs {
		updated := removeUint(logs[index].SymptomIDs, symptomID)
		if len(updated) == len(logs[index].SymptomIDs) {
			continue
		}
		logs[index].SymptomIDs = updated
		if err := service.logs.UpdateSymptomIDs(&logs[index]); err != nil {
			return err
		}
	}
	return nil
}

func MissingBuiltinSymptomsForUser(userID uint, existingByName map[string]struct{}) []models.SymptomType {
	missing := make([]models.SymptomType, 0)
	for _, symptom := range models.DefaultBuiltinSymptoms() {
		if _, ok := existingByName[symptomNameKey(symptom.Name)]; ok {
			continue
		}
		missing = append(missing, models.SymptomType{
			UserID:    userID,
			Name:      symptom.Name,
			Icon:      symptom.Icon,
			Color:     symptom.Color,
			IsBuiltin: true,
		})
	}
	return missing
}

func SortSymptomsByBuiltinAndName(symptoms []models.SymptomType) {
	builtinOrder := make(map[string]int)
	for index, symptom := range models.DefaultBuiltinSymptoms() {
		builtinOrder[symptomNameKey(symptom.Name)] = index
	}

	sort.SliceStable(symptoms, func(i, j int) bool {
		left, right := symptoms[i], symptoms[j]
		if left.IsBuiltin != right.IsBuiltin {
			return left.IsBuiltin
		}
		if left.IsBuiltin {
			leftIndex, leftHas := builtinOrder[symptomNameKey(left.Name)]
			rightIndex, rightHas := builtinOrder[symptomNameKey(right.Name)]
			switch {
			case leftHas && rightHas && leftIndex != rightIndex:
				return leftIndex < rightIndex
			case leftHas != rightHas:
				return leftHas
			}
		}
		return symptomNameKey(left.Name) < symptomNameKey(right.Name)
	})
}

func symptomNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func removeUint(values []uint, target uint) []uint {
	result := make([]uint, 0, len(values))
	for _, value := range values {
		if value != target {
			result = append(result, value)
		}
	}
	return result
}
