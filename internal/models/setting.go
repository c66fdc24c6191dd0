package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Known setting keys. The settings table only ever holds these.
const (
	SettingBusinessHours = "business_hours"
	SettingClosureNotice = "closure_notice"
)

// Setting stores one typed configuration blob under a known key
type Setting struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string         `gorm:"uniqueIndex;not null" json:"key"`
	Value     datatypes.JSON `gorm:"type:json;not null" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// DayHours is the open/close window for a single weekday
type DayHours struct {
	Open   string `json:"open"`  // "09:00"
	Close  string `json:"close"` // "18:00"
	Closed bool   `json:"closed"`
}

// BusinessHours is the value schema for SettingBusinessHours
type BusinessHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

// ClosureNotice is the value schema for SettingClosureNotice
type ClosureNotice struct {
	Closed  bool   `json:"closed"`
	Message string `json:"message"`
}
