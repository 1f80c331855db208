package controllers

import (
	"net/http"

	"github.com/Kariqs/justdrops-api/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SubmitContact(ctx *gin.Context) {
	var in services.ContactInput
	if !bindJSON(ctx, &in) {
		return
	}
	message, err := h.svc.Inbox.SubmitContact(ctx.Request.Context(), in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to send message")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Message received", "contact": message})
}

func (h *Handler) Subscribe(ctx *gin.Context) {
	var in services.SubscribeInput
	if !bindJSON(ctx, &in) {
		return
	}
	subscriber, err := h.svc.Inbox.Subscribe(ctx.Request.Context(), in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to subscribe")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Subscribed", "subscriber": subscriber})
}

func (h *Handler) ListContactMessages(ctx *gin.Context) {
	messages, err := h.svc.Inbox.ListContactMessages(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch contact messages")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"messages": messages})
}

func (h *Handler) ListSubscribers(ctx *gin.Context) {
	subscribers, err := h.svc.Inbox.ListSubscribers(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch subscribers")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"subscribers": subscribers})
}
