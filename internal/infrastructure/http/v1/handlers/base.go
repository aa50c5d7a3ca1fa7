package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/infrastructure/http/v1/middleware"
	"knkadmin/internal/ui/locale"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error processes error and sends appropriate response.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	h.HandleError(c, err)
}

// HandleError registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseIntParam parses an integer path parameter.
func (h *BaseHandler) ParseIntParam(c *gin.Context, key string) (int, bool) {
	parsed, err := strconv.Atoi(c.Param(key))
	if err != nil {
		h.Error(c, apperror.NewInvalidInput(key+" must be an integer").WithDetail(key, c.Param(key)))
		return 0, false
	}
	return parsed, true
}

// Locale returns the display locale chosen for the request.
func (h *BaseHandler) Locale(c *gin.Context) *locale.Locale {
	return middleware.GetLocale(c)
}

// Created sends 201 response with data.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
