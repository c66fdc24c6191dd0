package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/config"
	"github.com/hillcountrygardens/backend/internal/middleware"
)

// Registry groups the resource handlers behind the API route table
type Registry struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Blog     *BlogHandler
	Gallery  *GalleryHandler
	Reviews  *ReviewHandler
	Contact  *ContactHandler
	Team     *TeamHandler
	Settings *SettingsHandler
}

// Register mounts the full route table. cmd/api and the handler tests both
// go through here, so they always serve the same routes.
func (r *Registry) Register(router *gin.Engine, cfg *config.Config) {
	// Health check outside API group
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api/v1")
	{
		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		// Public routes
		public := api.Group("/public")
		{
			public.GET("/categories", r.Catalog.GetCategories)
			public.GET("/categories/:slug", r.Catalog.GetCategory)
			public.GET("/products", r.Catalog.GetProducts)
			public.GET("/products/:slug", r.Catalog.GetProduct)
			public.GET("/blog", r.Blog.GetPosts)
			public.GET("/blog/:slug", r.Blog.GetPost)
			public.GET("/gallery", r.Gallery.GetImages)
			public.GET("/gallery/:id", r.Gallery.GetImage)
			public.GET("/reviews", r.Reviews.GetReviews)
			public.POST("/reviews", r.Reviews.CreateReview)
			public.POST("/contact", r.Contact.CreateMessage)
			public.POST("/newsletter", r.Contact.Subscribe)
			public.POST("/newsletter/unsubscribe", r.Contact.Unsubscribe)
			public.GET("/team", r.Team.GetMembers)
			public.GET("/settings/business-hours", r.Settings.GetBusinessHours)
			public.GET("/settings/closure", r.Settings.GetClosureNotice)
		}

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", r.Auth.Login)
			auth.POST("/refresh", r.Auth.Refresh)
			auth.POST("/logout", r.Auth.Logout)
		}

		// Admin routes behind JWT auth
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(cfg))
		{
			// Category management
			admin.POST("/categories", r.Catalog.CreateCategory)
			admin.PUT("/categories/:id", r.Catalog.UpdateCategory)
			admin.DELETE("/categories/:id", r.Catalog.DeleteCategory)

			// Product management
			admin.GET("/products", r.Catalog.GetAllProducts)
			admin.GET("/products/:id", r.Catalog.GetProductByID)
			admin.POST("/products", r.Catalog.CreateProduct)
			admin.PUT("/products/:id", r.Catalog.UpdateProduct)
			admin.DELETE("/products/:id", r.Catalog.DeleteProduct)

			// Blog management
			admin.GET("/blog", r.Blog.GetAllPosts)
			admin.GET("/blog/:id", r.Blog.GetPostByID)
			admin.POST("/blog", r.Blog.CreatePost)
			admin.PUT("/blog/:id", r.Blog.UpdatePost)
			admin.DELETE("/blog/:id", r.Blog.DeletePost)

			// Gallery management
			admin.POST("/gallery", r.Gallery.UploadImage)
			admin.PUT("/gallery/:id", r.Gallery.UpdateImage)
			admin.DELETE("/gallery/:id", r.Gallery.DeleteImage)
			admin.POST("/gallery/:id/identify", r.Gallery.IdentifyImage)

			// Review moderation
			admin.GET("/reviews", r.Reviews.GetAllReviews)
			admin.PUT("/reviews/:id/approve", r.Reviews.ApproveReview)
			admin.DELETE("/reviews/:id", r.Reviews.DeleteReview)

			// Contact messages
			admin.GET("/contact", r.Contact.GetMessages)
			admin.PUT("/contact/:id/read", r.Contact.MarkMessageRead)
			admin.DELETE("/contact/:id", r.Contact.DeleteMessage)

			// Newsletter
			admin.GET("/newsletter", r.Contact.GetSubscribers)

			// Team management
			admin.GET("/team", r.Team.GetAllMembers)
			admin.POST("/team", r.Team.CreateMember)
			admin.PUT("/team/:id", r.Team.UpdateMember)
			admin.DELETE("/team/:id", r.Team.DeleteMember)

			// Settings
			admin.PUT("/settings/business-hours", r.Settings.PutBusinessHours)
			admin.PUT("/settings/closure", r.Settings.PutClosureNotice)
		}
	}
}
