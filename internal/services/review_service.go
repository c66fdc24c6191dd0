package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hillcountrygardens/backend/internal/models"
	"gorm.io/gorm"
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview stores a visitor review. Reviews start unapproved and only
// show up publicly after an admin approves them.
func (s *ReviewService) CreateReview(review *models.Review) error {
	if strings.TrimSpace(review.Author) == "" || strings.TrimSpace(review.Text) == "" {
		return ErrMissingField
	}
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}
	review.Approved = false
	return s.db.Create(review).Error
}

// ListReviews returns reviews, optionally filtered by approval state,
// newest first
func (s *ReviewService) ListReviews(approved *bool) ([]models.Review, error) {
	query := s.db.Model(&models.Review{})
	if approved != nil {
		query = query.Where("approved = ?", *approved)
	}

	var reviews []models.Review
	if err := query.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetReviewByID returns a single review
func (s *ReviewService) GetReviewByID(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// SetApproved updates the approval flag of a review
func (s *ReviewService) SetApproved(id uuid.UUID, approved bool) error {
	if _, err := s.GetReviewByID(id); err != nil {
		return err
	}
	return s.db.Model(&models.Review{}).Where("id = ?", id).Update("approved", approved).Error
}

// DeleteReview deletes a review
func (s *ReviewService) DeleteReview(id uuid.UUID) error {
	if _, err := s.GetReviewByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.Review{}, "id = ?", id).Error
}
