package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/pkg/validation"
	"gorm.io/gorm"
)

// PostFilter holds the optional constraints of the blog list endpoint
type PostFilter struct {
	Published *bool
	Featured  *bool
	Search    string
}

type BlogService struct {
	db *gorm.DB
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

// CreatePost creates a new blog post, deriving the slug from the title when
// none is supplied
func (s *BlogService) CreatePost(post *models.BlogPost) error {
	if strings.TrimSpace(post.Title) == "" {
		return ErrMissingField
	}
	if post.Slug == "" {
		post.Slug = validation.Slugify(post.Title)
	}
	if !validation.ValidateSlug(post.Slug) {
		return ErrInvalidSlug
	}

	var count int64
	if err := s.db.Model(&models.BlogPost{}).Where("slug = ?", post.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}

	return s.db.Create(post).Error
}

// ListPosts returns posts matching the filter, newest first. Search matches
// title or excerpt, case-insensitive.
func (s *BlogService) ListPosts(filter PostFilter) ([]models.BlogPost, error) {
	query := s.db.Model(&models.BlogPost{})

	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?", like, like)
	}

	var posts []models.BlogPost
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostByID returns a single post
func (s *BlogService) GetPostByID(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostBySlug returns a single post by its slug
func (s *BlogService) GetPostBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.db.First(&post, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies a partial update to a post
func (s *BlogService) UpdatePost(id uuid.UUID, updates map[string]interface{}) (*models.BlogPost, error) {
	post, err := s.GetPostByID(id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return post, nil
	}
	if err := s.db.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post
func (s *BlogService) DeletePost(id uuid.UUID) error {
	if _, err := s.GetPostByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.BlogPost{}, "id = ?", id).Error
}
