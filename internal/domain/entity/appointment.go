package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCanceled  AppointmentStatus = "CANCELED"
)

// Terminal states have no outgoing transitions.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {AppointmentStatusConfirmed, AppointmentStatusCanceled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCanceled},
	AppointmentStatusCompleted: {},
	AppointmentStatusCanceled:  {},
}

// IsValid checks the status is one of the known states
func (s AppointmentStatus) IsValid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCanceled
}

// CanTransitionTo reports whether next is a legal move from s
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment is a patient's reservation with a doctor.
// When SlotID is set, ScheduledAt equals the slot's date and start time.
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	SlotID      *uuid.UUID        `gorm:"type:uuid;index" json:"slot_id,omitempty"`
	ScheduledAt time.Time         `gorm:"not null;index" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"type:varchar(10);not null;index" json:"status"`
	Code        string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCanceled checks if appointment is canceled
func (a *Appointment) IsCanceled() bool {
	return a.Status == AppointmentStatusCanceled
}

// HasSlot checks if appointment was booked through a slot
func (a *Appointment) HasSlot() bool {
	return a.SlotID != nil
}

// AppointmentFilter is a domain-level filter for the admin listing.
type AppointmentFilter struct {
	Status *AppointmentStatus
	From   *time.Time // inclusive
	To     *time.Time // exclusive
	Page   int
	Limit  int
}

// LifecycleEvent is emitted after every successful create or status transition.
type LifecycleEvent struct {
	AppointmentID uuid.UUID         `json:"appointment_id"`
	DoctorID      uuid.UUID         `json:"doctor_id"`
	PatientID     uuid.UUID         `json:"patient_id"`
	Status        AppointmentStatus `json:"status"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// NewLifecycleEvent snapshots the appointment's current status
func NewLifecycleEvent(a *Appointment, at time.Time) LifecycleEvent {
	return LifecycleEvent{
		AppointmentID: a.ID,
		DoctorID:      a.DoctorID,
		PatientID:     a.PatientID,
		Status:        a.Status,
		OccurredAt:    at,
	}
}
