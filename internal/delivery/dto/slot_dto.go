package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type GenerateSlotsRequest struct {
	StartDate       string `json:"start_date" validate:"required"` // Format: YYYY-MM-DD
	EndDate         string `json:"end_date" validate:"required"`   // Format: YYYY-MM-DD
	DurationMinutes *int   `json:"duration_minutes" validate:"omitempty,gte=1,lte=1440"` // Omitted means the configured default
}

// Response DTOs

type SlotResponse struct {
	ID            uuid.UUID  `json:"id"`
	DoctorID      uuid.UUID  `json:"doctor_id"`
	SlotDate      string     `json:"slot_date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Status        string     `json:"status"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	Version       int64      `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}
