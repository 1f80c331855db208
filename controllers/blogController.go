package controllers

import (
	"net/http"

	"github.com/Kariqs/justdrops-api/middlewares"
	"github.com/Kariqs/justdrops-api/services"
	"github.com/gin-gonic/gin"
)

// GetBlogPosts lists published posts. Signed-in admins also see drafts.
func (h *Handler) GetBlogPosts(ctx *gin.Context) {
	posts, err := h.svc.Blog.ListPosts(ctx.Request.Context(), middlewares.IsAdmin(ctx), ctx.Query("category"))
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch blog posts")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"posts": posts})
}

func (h *Handler) GetBlogPost(ctx *gin.Context) {
	post, err := h.svc.Blog.GetPost(ctx.Request.Context(), ctx.Param("slug"), middlewares.IsAdmin(ctx))
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch blog post")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"post": post})
}

func (h *Handler) GetBlogCategories(ctx *gin.Context) {
	categories, err := h.svc.Blog.ListCategories(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch blog categories")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) CreateBlogPost(ctx *gin.Context) {
	var in services.BlogPostInput
	if !bindJSON(ctx, &in) {
		return
	}
	post, err := h.svc.Blog.CreatePost(ctx.Request.Context(), middlewares.CurrentAdmin(ctx), in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to create blog post")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"post": post})
}

func (h *Handler) UpdateBlogPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var patch services.BlogPostPatch
	if !bindJSON(ctx, &patch) {
		return
	}
	post, err := h.svc.Blog.UpdatePost(ctx.Request.Context(), id, patch)
	if err != nil {
		handleServiceError(ctx, err, "Failed to update blog post")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"post": post})
}

func (h *Handler) DeleteBlogPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := h.svc.Blog.DeletePost(ctx.Request.Context(), id); err != nil {
		handleServiceError(ctx, err, "Failed to delete blog post")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *Handler) CreateBlogCategory(ctx *gin.Context) {
	var in services.BlogCategoryInput
	if !bindJSON(ctx, &in) {
		return
	}
	category, err := h.svc.Blog.CreateCategory(ctx.Request.Context(), in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to create blog category")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"category": category})
}
