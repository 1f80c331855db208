package controllers

import (
	"net/http"

	"github.com/Kariqs/justdrops-api/middlewares"
	"github.com/Kariqs/justdrops-api/services"
	"github.com/gin-gonic/gin"
)

type quantityUpdate struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) GetCart(ctx *gin.Context) {
	view, err := h.svc.Cart.Get(ctx.Request.Context(), middlewares.SessionID(ctx))
	if err != nil {
		handleServiceError(ctx, err, "Error fetching cart items")
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func (h *Handler) AddCartItem(ctx *gin.Context) {
	var in services.AddToCartInput
	if !bindJSON(ctx, &in) {
		return
	}
	item, created, err := h.svc.Cart.Add(ctx.Request.Context(), middlewares.SessionID(ctx), in)
	if err != nil {
		handleServiceError(ctx, err, "Error adding item to cart")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	sendJSONResponse(ctx, status, gin.H{"item": item})
}

func (h *Handler) UpdateCartItem(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in quantityUpdate
	if !bindJSON(ctx, &in) {
		return
	}
	item, err := h.svc.Cart.SetQuantity(ctx.Request.Context(), id, *in.Quantity)
	if err != nil {
		handleServiceError(ctx, err, "Error updating cart item")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"item": item})
}

func (h *Handler) RemoveCartItem(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := h.svc.Cart.Remove(ctx.Request.Context(), id); err != nil {
		handleServiceError(ctx, err, "Error removing cart item")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *Handler) ClearCart(ctx *gin.Context) {
	if err := h.svc.Cart.Clear(ctx.Request.Context(), middlewares.SessionID(ctx)); err != nil {
		handleServiceError(ctx, err, "Error clearing cart")
		return
	}
	ctx.Status(http.StatusNoContent)
}
