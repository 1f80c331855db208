package routes

import (
	"github.com/Kariqs/justdrops-api/controllers"
	"github.com/gin-gonic/gin"
)

func BlogRoutes(api, admin *gin.RouterGroup, h *controllers.Handler) {
	blog := api.Group("/blog")
	{
		blog.GET("/posts", h.GetBlogPosts)
		blog.GET("/posts/:slug", h.GetBlogPost)
		blog.GET("/categories", h.GetBlogCategories)
	}

	adminBlog := admin.Group("/blog")
	{
		adminBlog.GET("/posts", h.GetBlogPosts)
		adminBlog.POST("/posts", h.CreateBlogPost)
		adminBlog.PUT("/posts/:id", h.UpdateBlogPost)
		adminBlog.DELETE("/posts/:id", h.DeleteBlogPost)
		adminBlog.POST("/categories", h.CreateBlogCategory)
	}
}
