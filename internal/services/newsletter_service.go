package services

import (
	"errors"
	"strings"

	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/pkg/validation"
	"gorm.io/gorm"
)

type NewsletterService struct {
	db *gorm.DB
}

func NewNewsletterService(db *gorm.DB) *NewsletterService {
	return &NewsletterService{db: db}
}

// Subscribe adds an email to the newsletter list. Subscribing an address
// that already exists never creates a second row; it reactivates the
// existing one instead.
func (s *NewsletterService) Subscribe(email string) (*models.NewsletterSubscriber, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !validation.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}

	var subscriber models.NewsletterSubscriber
	err := s.db.Where("email = ?", email).First(&subscriber).Error
	if err == nil {
		if !subscriber.Active {
			if err := s.db.Model(&subscriber).Update("active", true).Error; err != nil {
				return nil, err
			}
			subscriber.Active = true
		}
		return &subscriber, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subscriber = models.NewsletterSubscriber{Email: email, Active: true}
	if err := s.db.Create(&subscriber).Error; err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// Unsubscribe deactivates a subscription; the row is kept so the address
// stays unique
func (s *NewsletterService) Unsubscribe(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	var subscriber models.NewsletterSubscriber
	if err := s.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Model(&subscriber).Update("active", false).Error
}

// ListSubscribers returns subscribers, optionally filtered by active state
func (s *NewsletterService) ListSubscribers(active *bool) ([]models.NewsletterSubscriber, error) {
	query := s.db.Model(&models.NewsletterSubscriber{})
	if active != nil {
		query = query.Where("active = ?", *active)
	}

	var subscribers []models.NewsletterSubscriber
	if err := query.Order("created_at DESC").Find(&subscribers).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}
