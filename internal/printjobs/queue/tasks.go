// Package queue provides the asynq transport for ticket print jobs.
package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskTicketPrint is the asynq task type for printing a lead ticket.
const TaskTicketPrint = "tickets.print"

// TicketPayload is the data a worker needs to render and print a ticket.
type TicketPayload struct {
	JobID     string `json:"jobId"`
	LeadID    string `json:"leadId"`
	EventSlug string `json:"eventSlug"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// NewTicketPrintTask serializes a ticket payload into an asynq task.
func NewTicketPrintTask(payload TicketPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTicketPrint, data), nil
}

// ParseTicketPayload deserializes a ticket payload from an asynq task.
func ParseTicketPayload(task *asynq.Task) (TicketPayload, error) {
	var payload TicketPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return TicketPayload{}, err
	}
	return payload, nil
}
