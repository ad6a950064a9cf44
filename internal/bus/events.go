// Package bus defines the in-process domain events exchanged between the
// bounded contexts, on top of the platform event bus.
package bus

import (
	"leadcapture_backend/platform/events"

	"github.com/google/uuid"
)

// Re-exported so modules depend on this package instead of the platform one.
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
)

// NewInMemoryBus constructs the default in-process bus.
var NewInMemoryBus = events.NewInMemoryBus

const (
	// EventTypeLeadRegistered is published after a lead passes admission and
	// is persisted. The print-job dispatcher subscribes to it.
	EventTypeLeadRegistered = "lead.registered"
)

// LeadRegistered carries the data needed to issue a ticket for a new lead.
type LeadRegistered struct {
	events.BaseEvent
	LeadID    uuid.UUID
	EventID   uuid.UUID
	EventSlug string
	Name      string
	Phone     string
	Email     string
}

// EventName returns the event type identifier.
func (e LeadRegistered) EventName() string { return EventTypeLeadRegistered }

// NewLeadRegistered creates a lead.registered event.
func NewLeadRegistered(leadID, eventID uuid.UUID, eventSlug, name, phone, email string) LeadRegistered {
	return LeadRegistered{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		EventID:   eventID,
		EventSlug: eventSlug,
		Name:      name,
		Phone:     phone,
		Email:     email,
	}
}
