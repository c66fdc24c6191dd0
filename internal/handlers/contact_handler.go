package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/internal/services"
)

type ContactHandler struct {
	contactService    *services.ContactService
	newsletterService *services.NewsletterService
}

func NewContactHandler(contactService *services.ContactService, newsletterService *services.NewsletterService) *ContactHandler {
	return &ContactHandler{
		contactService:    contactService,
		newsletterService: newsletterService,
	}
}

// CreateMessage accepts a contact form submission
// POST /public/contact
func (h *ContactHandler) CreateMessage(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.contactService.CreateMessage(message); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// GetMessages lists contact messages for the admin dashboard
// GET /admin/contact?read=
func (h *ContactHandler) GetMessages(c *gin.Context) {
	messages, err := h.contactService.ListMessages(parseBoolQuery(c, "read"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MarkMessageRead flags a message as read
// PUT /admin/contact/:id/read
func (h *ContactHandler) MarkMessageRead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.contactService.MarkRead(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteMessage deletes a contact message
// DELETE /admin/contact/:id
func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.contactService.DeleteMessage(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Subscribe adds an email to the newsletter list
// POST /public/newsletter
func (h *ContactHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	subscriber, err := h.newsletterService.Subscribe(req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subscriber)
}

// Unsubscribe deactivates a newsletter subscription
// POST /public/newsletter/unsubscribe
func (h *ContactHandler) Unsubscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if err := h.newsletterService.Unsubscribe(req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSubscribers lists newsletter subscribers for the admin dashboard
// GET /admin/newsletter?active=
func (h *ContactHandler) GetSubscribers(c *gin.Context) {
	subscribers, err := h.newsletterService.ListSubscribers(parseBoolQuery(c, "active"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers})
}
