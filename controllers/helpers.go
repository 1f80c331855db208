package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/justdrops-api/services"
	"github.com/Kariqs/justdrops-api/store"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	svc          *services.Services
	db           Pinger
	cookieSecure bool
}

func NewHandler(svc *services.Services, db Pinger, cookieSecure bool) *Handler {
	return &Handler{svc: svc, db: db, cookieSecure: cookieSecure}
}

// RegisterValidators installs the custom binding rules on gin's validator.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		services.RegisterValidations(v)
	}
}

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func bindJSON(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			sendErrorResponse(ctx, http.StatusBadRequest, services.DescribeValidation(err))
		} else {
			log.Printf("JSON binding error: %v", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		}
		return false
	}
	return true
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+param)
		return 0, false
	}
	return uint(id), true
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, services.ErrValidation), errors.Is(kind, services.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(kind, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, services.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(kind, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(kind, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError writes the response for a failed service call. Only
// messages from services.Error reach the client; anything else is logged and
// answered with fallback.
func handleServiceError(ctx *gin.Context, err error, fallback string) {
	var svcErr *services.Error
	switch {
	case errors.As(err, &svcErr):
		if errors.Is(svcErr.Kind, services.ErrPaymentUnrecorded) {
			log.Printf("%s: %v", fallback, err)
		}
		sendErrorResponse(ctx, statusFor(svcErr.Kind), svcErr.Message)
	case errors.Is(err, store.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrConflict):
		sendErrorResponse(ctx, http.StatusConflict, "Conflicts with existing data")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Printf("%s: %v", fallback, err)
		sendErrorResponse(ctx, http.StatusServiceUnavailable, "Request cancelled")
	default:
		log.Printf("%s: %v", fallback, err)
		sendErrorResponse(ctx, http.StatusInternalServerError, fallback)
	}
}
