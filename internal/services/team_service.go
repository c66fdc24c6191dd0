package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hillcountrygardens/backend/internal/models"
	"gorm.io/gorm"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// CreateMember adds a team member
func (s *TeamService) CreateMember(member *models.TeamMember) error {
	if strings.TrimSpace(member.Name) == "" {
		return ErrMissingName
	}
	return s.db.Create(member).Error
}

// ListMembers returns team members ordered by sort order, optionally only
// active ones
func (s *TeamService) ListMembers(active *bool) ([]models.TeamMember, error) {
	query := s.db.Model(&models.TeamMember{})
	if active != nil {
		query = query.Where("active = ?", *active)
	}

	var members []models.TeamMember
	if err := query.Order("sort_order ASC, created_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// GetMemberByID returns a single team member
func (s *TeamService) GetMemberByID(id uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := s.db.First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// UpdateMember applies a partial update to a team member
func (s *TeamService) UpdateMember(id uuid.UUID, updates map[string]interface{}) (*models.TeamMember, error) {
	member, err := s.GetMemberByID(id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return member, nil
	}
	if err := s.db.Model(member).Updates(updates).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteMember deletes a team member
func (s *TeamService) DeleteMember(id uuid.UUID) error {
	if _, err := s.GetMemberByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.TeamMember{}, "id = ?", id).Error
}
