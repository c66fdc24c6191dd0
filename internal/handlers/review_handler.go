package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/internal/services"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GetReviews lists approved reviews for visitors
// GET /public/reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	approved := true
	reviews, err := h.reviewService.ListReviews(&approved)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// CreateReview accepts a visitor review
// POST /public/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req struct {
		Author string `json:"author" binding:"required"`
		Rating int    `json:"rating" binding:"required"`
		Text   string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review := &models.Review{
		Author: req.Author,
		Rating: req.Rating,
		Text:   req.Text,
	}
	if err := h.reviewService.CreateReview(review); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetAllReviews lists reviews for the admin dashboard
// GET /admin/reviews?approved=
func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListReviews(parseBoolQuery(c, "approved"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// ApproveReview sets the approval flag of a review
// PUT /admin/reviews/:id/approve
func (h *ReviewHandler) ApproveReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Approved *bool `json:"approved"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Approved == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved is required"})
		return
	}

	if err := h.reviewService.SetApproved(id, *req.Approved); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteReview deletes a review
// DELETE /admin/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.reviewService.DeleteReview(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
