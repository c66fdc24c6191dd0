package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hillcountrygardens/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImageFilter holds the optional constraints of the gallery list endpoint
type ImageFilter struct {
	Category string
	Featured *bool
	Search   string
}

// PlantIdentification is the mapped result of a successful vision call.
// Nil fields were reported as "unknown" by the model.
type PlantIdentification struct {
	CommonName          *string
	LatinName           *string
	HardinessZone       *string
	SunPreference       *string
	DroughtTolerance    *string
	TexasNative         *bool
	IndoorOutdoor       *string
	PlantClassification *string
	Description         string
}

type GalleryService struct {
	db *gorm.DB
}

func NewGalleryService(db *gorm.DB) *GalleryService {
	return &GalleryService{db: db}
}

// CreateImage creates a gallery image record. Title, category and tags come
// from the uploader; AI fields start out empty.
func (s *GalleryService) CreateImage(image *models.GalleryImage, tags []string) error {
	if strings.TrimSpace(image.ImageURL) == "" {
		return ErrMissingImageURL
	}
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	image.Tags = datatypes.JSON(raw)
	return s.db.Create(image).Error
}

// ListImages returns gallery images matching the filter, newest first.
// Search matches title or description, case-insensitive.
func (s *GalleryService) ListImages(filter ImageFilter) ([]models.GalleryImage, error) {
	query := s.db.Model(&models.GalleryImage{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var images []models.GalleryImage
	if err := query.Order("created_at DESC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// GetImageByID returns a single gallery image
func (s *GalleryService) GetImageByID(id uuid.UUID) (*models.GalleryImage, error) {
	var image models.GalleryImage
	if err := s.db.First(&image, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// UpdateImage applies a partial update to uploader-editable fields
func (s *GalleryService) UpdateImage(id uuid.UUID, updates map[string]interface{}) (*models.GalleryImage, error) {
	image, err := s.GetImageByID(id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return image, nil
	}
	if err := s.db.Model(image).Updates(updates).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// DeleteImage deletes a gallery image record
func (s *GalleryService) DeleteImage(id uuid.UUID) error {
	if _, err := s.GetImageByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.GalleryImage{}, "id = ?", id).Error
}

// MarkIdentifyPending flags an image as queued for identification
func (s *GalleryService) MarkIdentifyPending(id uuid.UUID) error {
	return s.SetIdentifyStatus(id, models.IdentifyStatusPending)
}

// SetIdentifyStatus writes the identification task state without touching
// any other field
func (s *GalleryService) SetIdentifyStatus(id uuid.UUID, status string) error {
	return s.db.Model(&models.GalleryImage{}).Where("id = ?", id).
		Update("identify_status", status).Error
}

// ApplyIdentification merges a successful identification into the image row
// as a single atomic update. Re-running identification overwrites earlier
// results; the later write wins.
func (s *GalleryService) ApplyIdentification(id uuid.UUID, result *PlantIdentification) error {
	now := time.Now().UTC()

	updates := map[string]interface{}{
		"ai_identified":        true,
		"common_name":          result.CommonName,
		"latin_name":           result.LatinName,
		"hardiness_zone":       result.HardinessZone,
		"sun_preference":       result.SunPreference,
		"drought_tolerance":    result.DroughtTolerance,
		"texas_native":         result.TexasNative,
		"indoor_outdoor":       result.IndoorOutdoor,
		"plant_classification": result.PlantClassification,
		"ai_description":       result.Description,
		"identify_status":      models.IdentifyStatusSucceeded,
		"identified_at":        &now,
	}

	// Title only changes when the model actually named the plant
	if result.CommonName != nil {
		title := *result.CommonName
		if result.LatinName != nil {
			title = title + " (" + *result.LatinName + ")"
		}
		updates["title"] = title
	}

	return s.db.Model(&models.GalleryImage{}).Where("id = ?", id).Updates(updates).Error
}

// MarkIdentifyFailed records a failed identification attempt so the UI can
// distinguish "never tried" from "tried and failed". No structured fields
// are touched.
func (s *GalleryService) MarkIdentifyFailed(id uuid.UUID) error {
	sentinel := "Plant identification failed"
	return s.db.Model(&models.GalleryImage{}).Where("id = ?", id).Updates(map[string]interface{}{
		"ai_identified":   true,
		"ai_description":  &sentinel,
		"identify_status": models.IdentifyStatusFailed,
	}).Error
}
