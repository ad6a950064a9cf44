package service

import (
	"fmt"
	"time"

	"leadcapture_backend/platform/apperr"
)

const (
	CodeEventNotActive        = "EVENT_NOT_ACTIVE"
	CodeEventNotStartedYet    = "EVENT_NOT_STARTED_YET"
	CodeEventAlreadyEnded     = "EVENT_ALREADY_ENDED"
	CodeLeadAlreadyRegistered = "LEAD_ALREADY_REGISTERED"
	CodeInvalidCategory       = "INVALID_CATEGORY"
)

func eventNotActiveError(eventRef string) *apperr.Error {
	return apperr.Validation(
		CodeEventNotActive,
		fmt.Sprintf("event %s is not accepting registrations", eventRef),
	)
}

func eventNotStartedYetError(startAt time.Time) *apperr.Error {
	return apperr.Validation(
		CodeEventNotStartedYet,
		fmt.Sprintf("event has not started yet; registrations open at %s", startAt.Format(time.RFC3339)),
	)
}

func eventAlreadyEndedError(endsAt time.Time) *apperr.Error {
	return apperr.Gone(
		CodeEventAlreadyEnded,
		fmt.Sprintf("event already ended at %s", endsAt.Format(time.RFC3339)),
	)
}

func leadAlreadyRegisteredError(email, eventSlug string) *apperr.Error {
	return apperr.Conflict(
		CodeLeadAlreadyRegistered,
		fmt.Sprintf("lead %s is already registered for event %s", email, eventSlug),
	).WithDetails(map[string]string{"email": email, "event": eventSlug})
}

func invalidCategoryError(category string) *apperr.Error {
	return apperr.Validation(
		CodeInvalidCategory,
		fmt.Sprintf("unknown breakdown category %q", category),
	)
}
