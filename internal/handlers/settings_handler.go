package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/internal/services"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetBusinessHours returns the store's opening hours
// GET /public/settings/business-hours
func (h *SettingsHandler) GetBusinessHours(c *gin.Context) {
	hours, err := h.settingsService.GetBusinessHours()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

// PutBusinessHours stores the opening hours
// PUT /admin/settings/business-hours
func (h *SettingsHandler) PutBusinessHours(c *gin.Context) {
	var hours models.BusinessHours
	if err := c.ShouldBindJSON(&hours); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsService.PutBusinessHours(&hours); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

// GetClosureNotice returns the temporary-closure banner state
// GET /public/settings/closure
func (h *SettingsHandler) GetClosureNotice(c *gin.Context) {
	notice, err := h.settingsService.GetClosureNotice()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notice)
}

// PutClosureNotice stores the temporary-closure banner state
// PUT /admin/settings/closure
func (h *SettingsHandler) PutClosureNotice(c *gin.Context) {
	var notice models.ClosureNotice
	if err := c.ShouldBindJSON(&notice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsService.PutClosureNotice(&notice); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notice)
}
