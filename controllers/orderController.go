package controllers

import (
	"net/http"

	"github.com/Kariqs/justdrops-api/middlewares"
	"github.com/Kariqs/justdrops-api/services"
	"github.com/gin-gonic/gin"
)

type statusUpdate struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) CreateOrder(ctx *gin.Context) {
	var in services.CheckoutInput
	if !bindJSON(ctx, &in) {
		return
	}
	// Orders belong to the signed in user or to nobody; a body userId is not trusted.
	in.UserID = nil
	if claims, ok := middlewares.CurrentUser(ctx); ok {
		in.UserID = &claims.UserID
	}

	order, err := h.svc.Orders.Create(ctx.Request.Context(), middlewares.SessionID(ctx), in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to create order")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"order": order})
}

func (h *Handler) GetOrder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	order, err := h.svc.Orders.Get(ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch order")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order, "items": order.OrderItems})
}

func (h *Handler) PayOrder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.PaymentInput
	if !bindJSON(ctx, &in) {
		return
	}
	order, err := h.svc.Orders.Pay(ctx.Request.Context(), id, in)
	if err != nil {
		handleServiceError(ctx, err, "Payment processing failed")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Payment successful", "order": order})
}

// Admin

func (h *Handler) ListOrders(ctx *gin.Context) {
	orders, err := h.svc.Orders.List(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) UpdateOrderStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in statusUpdate
	if !bindJSON(ctx, &in) {
		return
	}
	order, err := h.svc.Orders.UpdateStatus(ctx.Request.Context(), middlewares.CurrentAdmin(ctx), id, in.Status)
	if err != nil {
		handleServiceError(ctx, err, "Failed to update order status")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

func (h *Handler) BulkUpdateOrderStatus(ctx *gin.Context) {
	var in services.BulkStatusInput
	if !bindJSON(ctx, &in) {
		return
	}
	updated, err := h.svc.Orders.BulkUpdateStatus(ctx.Request.Context(), middlewares.CurrentAdmin(ctx), in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to update orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"updated": updated, "status": in.Status})
}

func (h *Handler) GetShippingOptions(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"services":     services.ShippingOptions,
		"packageSizes": services.PackageSizes,
	})
}

func (h *Handler) CreateShippingLabel(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.LabelInput
	if !bindJSON(ctx, &in) {
		return
	}
	label, err := h.svc.Shipping.CreateLabel(ctx.Request.Context(), middlewares.CurrentAdmin(ctx), id, in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to create shipping label")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"label": label})
}

func (h *Handler) GetShippingLabels(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	labels, err := h.svc.Shipping.Labels(ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch shipping labels")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"labels": labels})
}

func (h *Handler) GetDashboardStats(ctx *gin.Context) {
	stats, err := h.svc.Dashboard.Stats(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, err, "Failed to compute dashboard stats")
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
