package routes

import (
	"github.com/Kariqs/justdrops-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(api, admin *gin.RouterGroup, h *controllers.Handler) {
	api.GET("/products", h.GetProducts)
	api.GET("/products/:slug", h.GetProduct)
	api.GET("/categories", h.GetCategories)
	api.GET("/categories/:slug", h.GetCategory)

	products := admin.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.AdminGetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.POST("/:id/specifications", h.CreateProductSpecs)
		products.POST("/:id/images", h.CreateProductImage)
		products.POST("/:id/images/upload", h.UploadProductImages)
		products.PUT("/:id/inventory", h.UpdateInventory)
		products.GET("/:id/inventory", h.GetInventoryHistory)
	}

	categories := admin.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}
