// Package transport defines the request and response shapes of the leads API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// RegisterLeadRequest is the payload for registering a lead at an event.
// Categorical fields are closed enumerations; empty values fall back to
// their defaults before validation.
type RegisterLeadRequest struct {
	Name                   string `json:"name" validate:"required,min=2,max=200"`
	Phone                  string `json:"phone" validate:"required"`
	Email                  string `json:"email" validate:"required,email"`
	IsStudent              bool   `json:"isStudent"`
	IntendsToStudyNextYear bool   `json:"intendsToStudyNextYear"`
	TechnicalInterest      string `json:"technicalInterest" validate:"omitempty,oneof=ENF INF ADM NONE"`
	SegmentInterest        string `json:"segmentInterest" validate:"omitempty,oneof=NONE JARDIM_1 JARDIM_2 ANO_1_FUNDAMENTAL ANO_2_FUNDAMENTAL ANO_3_FUNDAMENTAL ANO_4_FUNDAMENTAL ANO_5_FUNDAMENTAL ANO_6_FUNDAMENTAL ANO_7_FUNDAMENTAL ANO_8_FUNDAMENTAL ANO_9_FUNDAMENTAL ANO_1_MEDIO ANO_2_MEDIO ANO_3_MEDIO"`
	Origin                 string `json:"origin" validate:"omitempty,oneof=qrcode instagram manual"`
}

// LeadResponse is the API representation of a lead.
type LeadResponse struct {
	ID                     uuid.UUID `json:"id"`
	EventID                uuid.UUID `json:"eventId"`
	Name                   string    `json:"name"`
	Phone                  string    `json:"phone"`
	Email                  string    `json:"email"`
	IsStudent              bool      `json:"isStudent"`
	IntendsToStudyNextYear bool      `json:"intendsToStudyNextYear"`
	TechnicalInterest      string    `json:"technicalInterest"`
	SegmentInterest        string    `json:"segmentInterest"`
	Origin                 string    `json:"origin"`
	CreatedAt              time.Time `json:"createdAt"`
}

// LeadListResponse wraps a collection of leads.
type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
	Total int            `json:"total"`
}

// HourlyBucketResponse is one point of the capture timeline.
type HourlyBucketResponse struct {
	Hour  time.Time `json:"hour"`
	Total int       `json:"total"`
}

// LeadsPerHourResponse is the dense per-hour capture timeline of an event.
type LeadsPerHourResponse struct {
	Buckets []HourlyBucketResponse `json:"leads"`
}

// CaptureRateResponse reports the hourly capture rate classification.
type CaptureRateResponse struct {
	Average int    `json:"average"`
	Status  string `json:"status"`
	Trend   string `json:"trend"`
	Message string `json:"message"`
}

// CategoryMetricResponse is one row of a category breakdown.
type CategoryMetricResponse struct {
	Category       string `json:"category"`
	Total          int    `json:"total"`
	IntentNextYear int    `json:"intentNextYear"`
}

// CategoryBreakdownResponse groups leads by a categorical field.
type CategoryBreakdownResponse struct {
	Category string                   `json:"category"`
	Items    []CategoryMetricResponse `json:"items"`
}

// EventOverviewResponse summarizes registration activity for an event.
type EventOverviewResponse struct {
	EventStatus  string `json:"eventStatus"`
	CurrentLeads int    `json:"currentLeads"`
	TotalLeads   int    `json:"totalLeads"`
}

// ExportResponse points at a generated export file.
type ExportResponse struct {
	Key         string `json:"key"`
	DownloadURL string `json:"downloadUrl"`
	TotalLeads  int    `json:"totalLeads"`
}
