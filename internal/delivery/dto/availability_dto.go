package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type WeeklyWindowRequest struct {
	Weekday   string `json:"weekday" validate:"required"`    // MONDAY..SUNDAY
	StartTime string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // Format: HH:MM
	Active    *bool  `json:"active"`                         // Defaults to true
}

type SetAvailabilityRequest struct {
	Windows []WeeklyWindowRequest `json:"windows" validate:"dive"`
}

// Response DTOs

type WeeklyWindowResponse struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`
}

type AvailabilityResponse struct {
	DoctorID uuid.UUID              `json:"doctor_id"`
	Windows  []WeeklyWindowResponse `json:"windows"`
}
