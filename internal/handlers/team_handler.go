package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/internal/services"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// GetMembers lists active team members for visitors
// GET /public/team
func (h *TeamHandler) GetMembers(c *gin.Context) {
	active := true
	members, err := h.teamService.ListMembers(&active)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// GetAllMembers lists team members for the admin dashboard
// GET /admin/team?active=
func (h *TeamHandler) GetAllMembers(c *gin.Context) {
	members, err := h.teamService.ListMembers(parseBoolQuery(c, "active"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// CreateMember adds a team member
// POST /admin/team
func (h *TeamHandler) CreateMember(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Role      string `json:"role"`
		Bio       string `json:"bio"`
		ImageURL  string `json:"image_url"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member := &models.TeamMember{
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
		Active:    true,
	}
	if err := h.teamService.CreateMember(member); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// UpdateMember applies a partial update to a team member
// PUT /admin/team/:id
func (h *TeamHandler) UpdateMember(c *gin.Context) {
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
		"name": true, "role": true, "bio": true, "image_url": true,
		"sort_order": true, "active": true,
	}
	updates := map[string]interface{}{}
	for key, value := range req {
		if allowed[key] {
			updates[key] = value
		}
	}

	member, err := h.teamService.UpdateMember(id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteMember deletes a team member
// DELETE /admin/team/:id
func (h *TeamHandler) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.teamService.DeleteMember(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
