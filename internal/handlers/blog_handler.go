package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/internal/services"
)

type BlogHandler struct {
	blogService *services.BlogService
}

func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// GetPosts lists published posts for visitors
// GET /public/blog?featured=&search=
func (h *BlogHandler) GetPosts(c *gin.Context) {
	published := true
	filter := services.PostFilter{
		Published: &published,
		Featured:  parseBoolQuery(c, "featured"),
		Search:    c.Query("search"),
	}

	posts, err := h.blogService.ListPosts(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost returns a single published post by slug
// GET /public/blog/:slug
func (h *BlogHandler) GetPost(c *gin.Context) {
	post, err := h.blogService.GetPostBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !post.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetAllPosts lists posts for the admin dashboard
// GET /admin/blog?published=&featured=&search=
func (h *BlogHandler) GetAllPosts(c *gin.Context) {
	filter := services.PostFilter{
		Published: parseBoolQuery(c, "published"),
		Featured:  parseBoolQuery(c, "featured"),
		Search:    c.Query("search"),
	}

	posts, err := h.blogService.ListPosts(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPostByID returns a single post by id, admin view
// GET /admin/blog/:id
func (h *BlogHandler) GetPostByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	post, err := h.blogService.GetPostByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost creates a blog post
// POST /admin/blog
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req struct {
		Title     string `json:"title" binding:"required"`
		Slug      string `json:"slug"`
		Excerpt   string `json:"excerpt"`
		Content   string `json:"content"`
		ImageURL  string `json:"image_url"`
		Author    string `json:"author"`
		Published bool   `json:"published"`
		Featured  bool   `json:"featured"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.BlogPost{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Author:    req.Author,
		Published: req.Published,
		Featured:  req.Featured,
	}
	if err := h.blogService.CreatePost(post); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost applies a partial update to a post
// PUT /admin/blog/:id
func (h *BlogHandler) UpdatePost(c *gin.Context) {
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
		"title": true, "excerpt": true, "content": true, "image_url": true,
		"author": true, "published": true, "featured": true,
	}
	updates := map[string]interface{}{}
	for key, value := range req {
		if allowed[key] {
			updates[key] = value
		}
	}

	post, err := h.blogService.UpdatePost(id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post
// DELETE /admin/blog/:id
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.blogService.DeletePost(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
