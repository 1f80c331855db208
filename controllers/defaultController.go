package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetHome(ctx *gin.Context) {
	message := `Welcome to JustDrops API. Storefront endpoints live under /api.

CATALOG
- GET "/api/products?category=&featured=&search=" - List products
- GET "/api/products/:slug" - Product detail
- GET "/api/categories" - List categories
- GET "/api/categories/:slug" - Category with products

CART (header X-Session-ID)
- GET "/api/cart" - Cart with subtotal
- POST "/api/cart" - Add item
- PUT "/api/cart/:id" - Set quantity
- DELETE "/api/cart/:id" - Remove item
- DELETE "/api/cart" - Clear cart

ORDERS
- POST "/api/orders" - Checkout the cart
- GET "/api/orders/:id" - Order with items
- PUT "/api/orders/:id/payment" - Pay with a card token

ACCOUNT
- POST "/api/users" - Register
- POST "/api/login" - Admin login
- POST "/api/logout" - Logout
- GET "/api/auth/status" - Session status

CONTENT
- POST "/api/contact" - Contact form
- POST "/api/newsletter" - Newsletter signup
- GET "/api/blog/posts" - Blog posts
- GET "/api/blog/posts/:slug" - Blog post
- GET "/api/blog/categories" - Blog categories

ADMIN
- "/api/admin/..." - Catalog, inventory, orders, shipping labels, stats, inbox, blog`

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": message})
}

func (h *Handler) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(pingCtx); err != nil {
		log.Printf("health check: database ping failed: %v", err)
		sendJSONResponse(ctx, http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
