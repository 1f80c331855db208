package routes

import (
	"github.com/Kariqs/justdrops-api/controllers"
	"github.com/Kariqs/justdrops-api/middlewares"
	"github.com/Kariqs/justdrops-api/services"
	"github.com/gin-gonic/gin"
)

// Setup mounts every route group on server. Storefront routes live under
// /api and the console under /api/admin.
func Setup(server *gin.Engine, h *controllers.Handler, auth *services.AuthService) {
	controllers.RegisterValidators()

	DefaultRoutes(server, h)

	api := server.Group("/api", middlewares.Authenticate(auth))
	admin := api.Group("/admin", middlewares.RequireAdmin())

	AuthRoutes(api, h)
	ProductRoutes(api, admin, h)
	CartRoutes(api, h)
	OrderRoutes(api, admin, h)
	InboxRoutes(api, admin, h)
	BlogRoutes(api, admin, h)
}
