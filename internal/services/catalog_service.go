package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/pkg/validation"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrCategoryInUse    = errors.New("category still has products")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrInvalidSlug      = errors.New("invalid slug format")
	ErrMissingName      = errors.New("name is required")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrMissingImageURL  = errors.New("image_url is required")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrUnknownSetting   = errors.New("unknown setting key")
	ErrInvalidTimeRange = errors.New("invalid open/close time")
)

// ProductFilter holds the optional constraints of the product list endpoint.
// Nil / empty fields mean "no constraint"; set fields combine with AND.
type ProductFilter struct {
	CategorySlug string
	Search       string
	Featured     *bool
	Active       *bool
	Zone         string
	Sun          string
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// CreateCategory creates a new category, deriving the slug from the name
// when none is supplied
func (s *CatalogService) CreateCategory(category *models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return ErrMissingName
	}
	if category.Slug == "" {
		category.Slug = validation.Slugify(category.Name)
	}
	if !validation.ValidateSlug(category.Slug) {
		return ErrInvalidSlug
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("slug = ?", category.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}

	return s.db.Create(category).Error
}

// GetCategories returns all categories ordered by name
func (s *CatalogService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID returns a single category
func (s *CatalogService) GetCategoryByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetCategoryBySlug returns a single category by its slug
func (s *CatalogService) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates name, description and image of a category
func (s *CatalogService) UpdateCategory(id uuid.UUID, updates map[string]interface{}) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return category, nil
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category unless products still reference it
func (s *CatalogService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.GetCategoryByID(id); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.db.Delete(&models.Category{}, "id = ?", id).Error
}

// CreateProduct creates a new product under an existing category
func (s *CatalogService) CreateProduct(product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return ErrMissingName
	}
	if product.CategoryID == uuid.Nil {
		return ErrUnknownCategory
	}
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", product.CategoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUnknownCategory
	}

	if product.Slug == "" {
		product.Slug = validation.Slugify(product.Name)
	}
	if !validation.ValidateSlug(product.Slug) {
		return ErrInvalidSlug
	}
	if err := s.db.Model(&models.Product{}).Where("slug = ?", product.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}

	return s.db.Create(product).Error
}

// ListProducts returns products matching the filter. All set constraints
// combine with AND; text search is a case-insensitive substring match over
// name and description. Featured products sort first, then newest.
func (s *CatalogService) ListProducts(filter ProductFilter) ([]models.Product, error) {
	query := s.db.Model(&models.Product{})

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", like, like)
	}
	if filter.Featured != nil {
		query = query.Where("products.featured = ?", *filter.Featured)
	}
	if filter.Active != nil {
		query = query.Where("products.active = ?", *filter.Active)
	}
	if filter.Zone != "" {
		query = query.Where("products.hardiness_zone = ?", filter.Zone)
	}
	if filter.Sun != "" {
		query = query.Where("products.sun_requirement = ?", filter.Sun)
	}

	var products []models.Product
	if err := query.Preload("Category").
		Order("products.featured DESC, products.created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID returns a single product with its category
func (s *CatalogService) GetProductByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// GetProductBySlug returns a single product by its slug
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").First(&product, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies a partial update to a product
func (s *CatalogService) UpdateProduct(id uuid.UUID, updates map[string]interface{}) (*models.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	if categoryID, ok := updates["category_id"]; ok {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrUnknownCategory
		}
	}
	if len(updates) == 0 {
		return product, nil
	}
	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetProductByID(id)
}

// DeleteProduct deletes a product
func (s *CatalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.GetProductByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.Product{}, "id = ?", id).Error
}
