package service

import (
	"fmt"
	"time"

	"leadcapture_backend/platform/apperr"
)

const (
	CodeEventAlreadyExists    = "EVENT_ALREADY_EXISTS"
	CodeEventStartDateInPast  = "EVENT_START_DATE_IN_PAST"
	CodeEventEndBeforeStart   = "EVENT_END_BEFORE_START"
	CodeEventDurationTooShort = "EVENT_DURATION_TOO_SHORT"
	CodeEventAlreadyEnded     = "EVENT_ALREADY_ENDED"
	CodeEventAlreadyStarted   = "EVENT_ALREADY_STARTED"
	CodeInvalidFileType       = "INVALID_FILE_TYPE"
	CodeInvalidTitle          = "INVALID_TITLE"
)

func eventAlreadyExistsError(slug string) *apperr.Error {
	return apperr.Conflict(
		CodeEventAlreadyExists,
		fmt.Sprintf("an event with slug %q already exists", slug),
	).WithDetails(map[string]string{"slug": slug})
}

func startDateInPastError(startAt time.Time) *apperr.Error {
	return apperr.Validation(
		CodeEventStartDateInPast,
		fmt.Sprintf("event start date %s is in the past", startAt.Format(time.RFC3339)),
	)
}

func endBeforeStartError(startAt, endsAt time.Time) *apperr.Error {
	return apperr.Validation(
		CodeEventEndBeforeStart,
		fmt.Sprintf("event end %s is not after start %s", endsAt.Format(time.RFC3339), startAt.Format(time.RFC3339)),
	)
}

func durationTooShortError(min, actual time.Duration) *apperr.Error {
	minMinutes := int(min.Minutes())
	actualMinutes := int(actual.Minutes())
	return apperr.Validation(
		CodeEventDurationTooShort,
		fmt.Sprintf("event duration %dm is shorter than minimum allowed %dm", actualMinutes, minMinutes),
	).WithDetails(map[string]int{"minMinutes": minMinutes, "actualMinutes": actualMinutes})
}

func eventAlreadyEndedError(endsAt time.Time) *apperr.Error {
	return apperr.Gone(
		CodeEventAlreadyEnded,
		fmt.Sprintf("event already ended at %s", endsAt.Format(time.RFC3339)),
	)
}

func eventAlreadyStartedError(startAt time.Time) *apperr.Error {
	return apperr.Validation(
		CodeEventAlreadyStarted,
		fmt.Sprintf("event already started at %s; the banner can no longer be replaced", startAt.Format(time.RFC3339)),
	)
}

func invalidFileTypeError(contentType string) *apperr.Error {
	return apperr.Validation(
		CodeInvalidFileType,
		fmt.Sprintf("content type %q is not an image", contentType),
	).WithDetails(map[string]interface{}{
		"contentType":  contentType,
		"allowedTypes": []string{"image/jpeg", "image/png"},
	})
}

func invalidTitleError(title string) *apperr.Error {
	return apperr.Validation(
		CodeInvalidTitle,
		fmt.Sprintf("title %q does not contain any slug-safe characters", title),
	)
}
