package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/pkg/validation"
	"gorm.io/gorm"
)

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// CreateMessage stores an inbound contact form submission
func (s *ContactService) CreateMessage(message *models.ContactMessage) error {
	if strings.TrimSpace(message.Name) == "" || strings.TrimSpace(message.Message) == "" {
		return ErrMissingField
	}
	if !validation.ValidateEmail(message.Email) {
		return ErrInvalidEmail
	}
	return s.db.Create(message).Error
}

// ListMessages returns contact messages, optionally filtered by read state,
// newest first
func (s *ContactService) ListMessages(read *bool) ([]models.ContactMessage, error) {
	query := s.db.Model(&models.ContactMessage{})
	if read != nil {
		query = query.Where("read = ?", *read)
	}

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// GetMessageByID returns a single contact message
func (s *ContactService) GetMessageByID(id uuid.UUID) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := s.db.First(&message, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

// MarkRead flags a message as read
func (s *ContactService) MarkRead(id uuid.UUID) error {
	if _, err := s.GetMessageByID(id); err != nil {
		return err
	}
	return s.db.Model(&models.ContactMessage{}).Where("id = ?", id).Update("read", true).Error
}

// DeleteMessage deletes a contact message
func (s *ContactService) DeleteMessage(id uuid.UUID) error {
	if _, err := s.GetMessageByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.ContactMessage{}, "id = ?", id).Error
}
