package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/internal/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetCategories lists all categories
// GET /public/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory returns a single category by slug
// GET /public/categories/:slug
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.catalogService.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a category
// POST /admin/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.catalogService.CreateCategory(category); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory updates a category
// PUT /admin/categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	category, err := h.catalogService.UpdateCategory(id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a category
// DELETE /admin/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteCategory(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetProducts lists products with optional filters. Public listings only
// ever see active products.
// GET /public/products?category=&search=&featured=&zone=&sun=
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	active := true
	filter := services.ProductFilter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		Featured:     parseBoolQuery(c, "featured"),
		Active:       &active,
		Zone:         c.Query("zone"),
		Sun:          c.Query("sun"),
	}

	products, err := h.catalogService.ListProducts(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetAllProducts lists products for the admin dashboard, including inactive
// ones unless filtered
// GET /admin/products?category=&search=&featured=&active=&zone=&sun=
func (h *CatalogHandler) GetAllProducts(c *gin.Context) {
	filter := services.ProductFilter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		Featured:     parseBoolQuery(c, "featured"),
		Active:       parseBoolQuery(c, "active"),
		Zone:         c.Query("zone"),
		Sun:          c.Query("sun"),
	}

	products, err := h.catalogService.ListProducts(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct returns a single product by slug
// GET /public/products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProductByID returns a single product by id, admin view
// GET /admin/products/:id
func (h *CatalogHandler) GetProductByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.catalogService.GetProductByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	CategoryID      uuid.UUID `json:"category_id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	ImageURL        string    `json:"image_url"`
	Featured        *bool     `json:"featured"`
	Active          *bool     `json:"active"`
	HardinessZone   string    `json:"hardiness_zone"`
	SunRequirement  string    `json:"sun_requirement"`
	DroughtTolerant *bool     `json:"drought_tolerant"`
	TexasNative     *bool     `json:"texas_native"`
	StockNote       string    `json:"stock_note"`
}

// CreateProduct creates a product
// POST /admin/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		Active:         true,
		HardinessZone:  req.HardinessZone,
		SunRequirement: req.SunRequirement,
		StockNote:      req.StockNote,
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.DroughtTolerant != nil {
		product.DroughtTolerant = *req.DroughtTolerant
	}
	if req.TexasNative != nil {
		product.TexasNative = *req.TexasNative
	}

	if err := h.catalogService.CreateProduct(product); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update to a product
// PUT /admin/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed := map[string]bool{
		"category_id": true, "name": true, "description": true, "price": true,
		"image_url": true, "featured": true, "active": true,
		"hardiness_zone": true, "sun_requirement": true,
		"drought_tolerant": true, "texas_native": true, "stock_note": true,
	}
	updates := map[string]interface{}{}
	for key, value := range req {
		if allowed[key] {
			updates[key] = value
		}
	}

	product, err := h.catalogService.UpdateProduct(id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct deletes a product
// DELETE /admin/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteProduct(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
