// Package transport defines the request and response shapes of the printers API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreatePrinterRequest registers a printer for an event.
type CreatePrinterRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Path        string  `json:"path" validate:"required"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Type        string  `json:"type" validate:"required,oneof=thermal inkjet laser pdf network"`
}

// PrinterResponse is the API representation of a printer.
type PrinterResponse struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"eventId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Path        string    `json:"path"`
	Description *string   `json:"description,omitempty"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PrinterListResponse wraps the printers of an event.
type PrinterListResponse struct {
	Printers     []PrinterResponse `json:"printers"`
	TotalPrinter int               `json:"totalPrinter"`
}

// PrintJobResponse is one queued ticket job of a printer.
type PrintJobResponse struct {
	ID        uuid.UUID `json:"id"`
	LeadID    uuid.UUID `json:"leadId"`
	Status    string    `json:"status"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
}

// PrinterQueueResponse lists the pending jobs of a printer.
type PrinterQueueResponse struct {
	Jobs  []PrintJobResponse `json:"jobs"`
	Total int                `json:"total"`
}
