package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/internal/services"
)

type GalleryHandler struct {
	galleryService  *services.GalleryService
	storageService  *services.StorageService
	identifyService *services.IdentifyService
}

func NewGalleryHandler(galleryService *services.GalleryService, storageService *services.StorageService, identifyService *services.IdentifyService) *GalleryHandler {
	return &GalleryHandler{
		galleryService:  galleryService,
		storageService:  storageService,
		identifyService: identifyService,
	}
}

// GetImages lists gallery images with optional filters
// GET /public/gallery?category=&featured=&search=
func (h *GalleryHandler) GetImages(c *gin.Context) {
	filter := services.ImageFilter{
		Category: c.Query("category"),
		Featured: parseBoolQuery(c, "featured"),
		Search:   c.Query("search"),
	}

	images, err := h.galleryService.ListImages(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

// GetImage returns a single gallery image
// GET /public/gallery/:id
func (h *GalleryHandler) GetImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	image, err := h.galleryService.GetImageByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// UploadImage handles gallery image upload
// POST /admin/gallery
// Multipart form: file (required), title, description, category, tags (repeated)
func (h *GalleryHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	_, url, err := h.storageService.UploadImage(c.Request.Context(), header.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image := &models.GalleryImage{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		ImageURL:    url,
	}
	if err := h.galleryService.CreateImage(image, c.PostFormArray("tags")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

// UpdateImage updates uploader-editable metadata
// PUT /admin/gallery/:id
func (h *GalleryHandler) UpdateImage(c *gin.Context) {
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
		"title": true, "description": true, "category": true, "featured": true,
	}
	updates := map[string]interface{}{}
	for key, value := range req {
		if allowed[key] {
			updates[key] = value
		}
	}

	image, err := h.galleryService.UpdateImage(id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}

// DeleteImage deletes a gallery image record and its stored object
// DELETE /admin/gallery/:id
func (h *GalleryHandler) DeleteImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	image, err := h.galleryService.GetImageByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := h.galleryService.DeleteImage(id); err != nil {
		respondServiceError(c, err)
		return
	}

	// Best-effort bucket cleanup; the record is already gone, so an orphaned
	// object only costs storage
	if key := h.storageService.KeyFromURL(image.ImageURL); key != "" {
		if err := h.storageService.DeleteObject(c.Request.Context(), key); err != nil {
			log.Printf("Gallery: failed to delete object %s: %v", key, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// IdentifyImage queues the plant identification pipeline for one image.
// The work runs in the background; the response only acknowledges the
// request was accepted.
// POST /admin/gallery/:id/identify
func (h *GalleryHandler) IdentifyImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.identifyService.Enqueue(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "accepted",
		"id":     id,
	})
}
