// Package handler exposes HTTP endpoints for lead registration and metrics.
package handler

import (
	"net/http"

	"leadcapture_backend/internal/leads/service"
	"leadcapture_backend/internal/leads/transport"
	"leadcapture_backend/platform/httpkit"
	"leadcapture_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid event id"
)

// Handler handles HTTP requests for leads.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the lead routes on the events group. The public
// slug registration route carries the extra registration rate limiter.
func (h *Handler) RegisterRoutes(events *gin.RouterGroup, registrationLimit gin.HandlerFunc) {
	events.POST("/:id/leads", h.Register)
	events.GET("/:id/leads", h.List)
	events.GET("/:id/metrics", h.Overview)
	events.GET("/:id/metrics/leads-per-hour", h.LeadsPerHour)
	events.GET("/:id/metrics/capture-rate", h.CaptureRate)
	events.GET("/:id/metrics/breakdown/:category", h.Breakdown)
	events.POST("/slug/:slug/leads", registrationLimit, h.RegisterBySlug)
	events.GET("/slug/:slug/leads/export", h.Export)
}

// Register registers a lead for an event by id.
// POST /api/v1/events/:id/leads
func (h *Handler) Register(c *gin.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}
	req, ok := h.bindLead(c)
	if !ok {
		return
	}

	result, err := h.svc.Register(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// RegisterBySlug registers a lead through the public QR-code flow.
// POST /api/v1/events/slug/:slug/leads
func (h *Handler) RegisterBySlug(c *gin.Context) {
	req, ok := h.bindLead(c)
	if !ok {
		return
	}

	result, err := h.svc.RegisterBySlug(c.Request.Context(), c.Param("slug"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// List returns all leads of an event.
// GET /api/v1/events/:id/leads
func (h *Handler) List(c *gin.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	result, err := h.svc.ListByEvent(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Overview returns registration totals for an event.
// GET /api/v1/events/:id/metrics
func (h *Handler) Overview(c *gin.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	result, err := h.svc.Overview(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// LeadsPerHour returns the dense hourly capture timeline.
// GET /api/v1/events/:id/metrics/leads-per-hour
func (h *Handler) LeadsPerHour(c *gin.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	result, err := h.svc.LeadsPerHour(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CaptureRate returns the capture-rate classification.
// GET /api/v1/events/:id/metrics/capture-rate
func (h *Handler) CaptureRate(c *gin.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	result, err := h.svc.CaptureRate(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Breakdown groups an event's leads by a categorical field.
// GET /api/v1/events/:id/metrics/breakdown/:category
func (h *Handler) Breakdown(c *gin.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	result, err := h.svc.BreakdownByCategory(c.Request.Context(), id, c.Param("category"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Export generates a CSV export of an event's leads.
// GET /api/v1/events/slug/:slug/leads/export
func (h *Handler) Export(c *gin.Context) {
	result, err := h.svc.ExportCSV(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) eventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.UUID{}, false
	}
	return id, true
}

func (h *Handler) bindLead(c *gin.Context) (transport.RegisterLeadRequest, bool) {
	var req transport.RegisterLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return transport.RegisterLeadRequest{}, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return transport.RegisterLeadRequest{}, false
	}
	return req, true
}
