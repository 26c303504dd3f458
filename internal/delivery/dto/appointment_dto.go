package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookSlotRequest struct {
	SlotID    uuid.UUID `json:"slot_id" validate:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	PatientID uuid.UUID `json:"patient_id"` // Taken from the token for patient callers
}

type LegacyBookingRequest struct {
	DoctorID    uuid.UUID `json:"doctor_id" validate:"required"`
	PatientID   uuid.UUID `json:"patient_id"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"` // RFC 3339
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	DoctorID    uuid.UUID  `json:"doctor_id"`
	PatientID   uuid.UUID  `json:"patient_id"`
	SlotID      *uuid.UUID `json:"slot_id,omitempty"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	Status      string     `json:"status"`
	Code        string     `json:"code"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// AppointmentPageResponse carries one page of the admin listing
type AppointmentPageResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	Total        int64                 `json:"total"`
}
