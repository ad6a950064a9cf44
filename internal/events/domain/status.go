// Package domain provides core business rules for the events bounded context.
package domain

import (
	"fmt"

	"leadcapture_backend/platform/apperr"
)

// Status is the lifecycle state of an event.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusFinished Status = "finished"
	StatusCanceled Status = "canceled"
)

// CodeInvalidStatusTransition identifies rejected lifecycle transitions.
const CodeInvalidStatusTransition = "INVALID_EVENT_STATUS_TRANSITION"

// allowedTransitions is the static lifecycle edge table. canceled is
// terminal; finished can only be canceled. Self-edges are never listed:
// repeating the current status is rejected rather than treated as a no-op.
var allowedTransitions = map[Status][]Status{
	StatusDraft:    {StatusActive, StatusCanceled},
	StatusActive:   {StatusFinished, StatusCanceled, StatusInactive},
	StatusInactive: {StatusActive, StatusFinished, StatusCanceled},
	StatusFinished: {StatusCanceled},
	StatusCanceled: {},
}

// IsValid reports whether s is one of the known lifecycle states.
func (s Status) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no transition can leave s.
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransition reports whether the lifecycle edge from -> to is allowed.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates the lifecycle edge from -> to and returns the new
// status, or a typed error when the edge is not in the allow-table.
func Transition(from, to Status) (Status, error) {
	if !CanTransition(from, to) {
		return "", InvalidTransitionError(from, to)
	}
	return to, nil
}

// InvalidTransitionError builds the typed error for a rejected edge.
func InvalidTransitionError(from, to Status) *apperr.Error {
	return apperr.Validation(
		CodeInvalidStatusTransition,
		fmt.Sprintf("cannot transition event from %q to %q", from, to),
	).WithDetails(map[string]string{"from": string(from), "to": string(to)})
}
