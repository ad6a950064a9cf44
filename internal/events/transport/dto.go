package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title   string    `json:"title" validate:"required,min=1,max=200"`
	StartAt time.Time `json:"startAt" validate:"required"`
	EndsAt  time.Time `json:"endsAt" validate:"required"`
}

type UpdateEventStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active inactive finished canceled"`
}

type EventResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	BannerURL *string   `json:"bannerUrl,omitempty"`
	StartAt   time.Time `json:"startAt"`
	EndsAt    time.Time `json:"endsAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type EventListResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
}
