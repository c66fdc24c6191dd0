package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/hillcountrygardens/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// SettingsService stores typed configuration records under a closed set of
// keys. Each known setting has its own schema; there is no generic
// key/value surface.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetBusinessHours returns the stored business hours, or sensible defaults
// when none have been saved yet
func (s *SettingsService) GetBusinessHours() (*models.BusinessHours, error) {
	var hours models.BusinessHours
	found, err := s.load(models.SettingBusinessHours, &hours)
	if err != nil {
		return nil, err
	}
	if !found {
		hours = defaultBusinessHours()
	}
	return &hours, nil
}

// PutBusinessHours validates and stores business hours
func (s *SettingsService) PutBusinessHours(hours *models.BusinessHours) error {
	days := []models.DayHours{
		hours.Monday, hours.Tuesday, hours.Wednesday, hours.Thursday,
		hours.Friday, hours.Saturday, hours.Sunday,
	}
	for _, day := range days {
		if day.Closed {
			continue
		}
		if !timeOfDayRegex.MatchString(day.Open) || !timeOfDayRegex.MatchString(day.Close) {
			return ErrInvalidTimeRange
		}
	}
	return s.store(models.SettingBusinessHours, hours)
}

// GetClosureNotice returns the stored closure notice, defaulting to "open"
func (s *SettingsService) GetClosureNotice() (*models.ClosureNotice, error) {
	var notice models.ClosureNotice
	found, err := s.load(models.SettingClosureNotice, &notice)
	if err != nil {
		return nil, err
	}
	if !found {
		notice = models.ClosureNotice{}
	}
	return &notice, nil
}

// PutClosureNotice stores the closure notice
func (s *SettingsService) PutClosureNotice(notice *models.ClosureNotice) error {
	return s.store(models.SettingClosureNotice, notice)
}

func (s *SettingsService) load(key string, out interface{}) (bool, error) {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(setting.Value, out); err != nil {
		return false, fmt.Errorf("corrupt setting %s: %w", key, err)
	}
	return true, nil
}

func (s *SettingsService) store(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	setting := models.Setting{Key: key, Value: datatypes.JSON(raw)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

func defaultBusinessHours() models.BusinessHours {
	weekday := models.DayHours{Open: "09:00", Close: "18:00"}
	return models.BusinessHours{
		Monday:    weekday,
		Tuesday:   weekday,
		Wednesday: weekday,
		Thursday:  weekday,
		Friday:    weekday,
		Saturday:  models.DayHours{Open: "09:00", Close: "17:00"},
		Sunday:    models.DayHours{Open: "10:00", Close: "16:00"},
	}
}
