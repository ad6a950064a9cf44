// Package handler exposes HTTP endpoints for event printers.
package handler

import (
	"net/http"

	"leadcapture_backend/internal/printers/service"
	"leadcapture_backend/internal/printers/transport"
	"leadcapture_backend/platform/httpkit"
	"leadcapture_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for printers.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new printers handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the printer routes on the events group.
func (h *Handler) RegisterRoutes(events *gin.RouterGroup) {
	events.POST("/:id/printers", h.Create)
	events.GET("/:id/printers", h.List)
	events.GET("/:id/printers/:printerId/queue", h.Queue)
}

// Create registers a printer for an event.
// POST /api/v1/events/:id/printers
func (h *Handler) Create(c *gin.Context) {
	eventID, ok := h.pathID(c, "id", "invalid event id")
	if !ok {
		return
	}

	var req transport.CreatePrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), eventID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// List returns the printers of an event.
// GET /api/v1/events/:id/printers
func (h *Handler) List(c *gin.Context) {
	eventID, ok := h.pathID(c, "id", "invalid event id")
	if !ok {
		return
	}

	result, err := h.svc.ListByEvent(c.Request.Context(), eventID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Queue lists the pending ticket jobs of a printer.
// GET /api/v1/events/:id/printers/:printerId/queue
func (h *Handler) Queue(c *gin.Context) {
	eventID, ok := h.pathID(c, "id", "invalid event id")
	if !ok {
		return
	}
	printerID, ok := h.pathID(c, "printerId", "invalid printer id")
	if !ok {
		return
	}

	result, err := h.svc.Queue(c.Request.Context(), eventID, printerID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) pathID(c *gin.Context, param, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msg, nil)
		return uuid.UUID{}, false
	}
	return id, true
}
