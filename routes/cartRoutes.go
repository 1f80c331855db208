package routes

import (
	"github.com/Kariqs/justdrops-api/controllers"
	"github.com/Kariqs/justdrops-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(api *gin.RouterGroup, h *controllers.Handler) {
	cart := api.Group("/cart")
	{
		cart.GET("", middlewares.RequireSession(), h.GetCart)
		cart.POST("", middlewares.RequireSession(), h.AddCartItem)
		cart.DELETE("", middlewares.RequireSession(), h.ClearCart)
		cart.PUT("/:id", h.UpdateCartItem)
		cart.DELETE("/:id", h.RemoveCartItem)
	}
}
