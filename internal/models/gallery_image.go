package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Identification lifecycle states for a gallery image
const (
	IdentifyStatusNone      = ""
	IdentifyStatusPending   = "pending"
	IdentifyStatusSucceeded = "succeeded"
	IdentifyStatusFailed    = "failed"
)

// PlantClassifications is the closed set of values the vision model may
// return for the classification field
var PlantClassifications = []string{
	"tree", "shrub", "herb", "succulent", "vine", "grass", "fern", "annual", "perennial",
}

// GalleryImage represents a photo in the nursery gallery. The AI block is
// filled in by the identification pipeline; pointer fields stay nil until an
// identification has run, and a field the model reported as "unknown" is
// stored as nil as well.
type GalleryImage struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"size:255" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `gorm:"size:1024;not null" json:"image_url"`
	Category    string         `gorm:"size:64;index" json:"category"`
	Tags        datatypes.JSON `gorm:"type:json" json:"tags"`
	Featured    bool           `gorm:"default:false" json:"featured"`

	// AI-derived attributes
	AIIdentified        bool    `gorm:"default:false" json:"ai_identified"`
	CommonName          *string `gorm:"size:255" json:"common_name"`
	LatinName           *string `gorm:"size:255" json:"latin_name"`
	HardinessZone       *string `gorm:"size:32" json:"hardiness_zone"`
	SunPreference       *string `gorm:"size:64" json:"sun_preference"`
	DroughtTolerance    *string `gorm:"size:64" json:"drought_tolerance"`
	TexasNative         *bool   `json:"texas_native"`
	IndoorOutdoor       *string `gorm:"size:32" json:"indoor_outdoor"`
	PlantClassification *string `gorm:"size:32" json:"plant_classification"`
	AIDescription       *string `gorm:"column:ai_description;type:text" json:"ai_description"`

	// Identification task state, persisted so failures are visible and
	// retriable instead of silently lost
	IdentifyStatus string     `gorm:"size:16;default:''" json:"identify_status"`
	IdentifiedAt   *time.Time `json:"identified_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *GalleryImage) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
