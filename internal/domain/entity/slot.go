package entity

import (
	"time"

	"github.com/google/uuid"
)

// SlotStatus represents the status of a slot
type SlotStatus string

const (
	SlotStatusOpen    SlotStatus = "OPEN"
	SlotStatusClaimed SlotStatus = "CLAIMED"
)

// DateLayout is the calendar date format used for slot dates
const DateLayout = "2006-01-02"

// Slot is a fixed-duration, dated unit of doctor availability.
// (DoctorID, SlotDate, StartTime) is unique. Version increments on every mutation.
type Slot struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_slots_doctor_date_start,priority:1" json:"doctor_id"`
	SlotDate      time.Time  `gorm:"type:date;not null;uniqueIndex:uq_slots_doctor_date_start,priority:2" json:"slot_date"`
	StartTime     ClockTime  `gorm:"type:time;not null;uniqueIndex:uq_slots_doctor_date_start,priority:3" json:"start_time"`
	EndTime       ClockTime  `gorm:"type:time;not null" json:"end_time"`
	Status        SlotStatus `gorm:"type:varchar(10);not null;index" json:"status"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"appointment_id,omitempty"`
	Version       int64      `gorm:"not null" json:"version"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Slot) TableName() string {
	return "slots"
}

// NewOpenSlot creates an unsaved OPEN slot at version 0
func NewOpenSlot(doctorID uuid.UUID, date time.Time, start, end ClockTime) *Slot {
	return &Slot{
		ID:        uuid.New(),
		DoctorID:  doctorID,
		SlotDate:  DateOnly(date),
		StartTime: start,
		EndTime:   end,
		Status:    SlotStatusOpen,
		Version:   0,
	}
}

// IsOpen checks if slot can be claimed
func (s *Slot) IsOpen() bool {
	return s.Status == SlotStatusOpen
}

// IsClaimed checks if slot is held by an appointment
func (s *Slot) IsClaimed() bool {
	return s.Status == SlotStatusClaimed
}

// StartsAt combines the slot date and start time
func (s *Slot) StartsAt() time.Time {
	return s.StartTime.On(s.SlotDate)
}

// DateKey returns the slot date as YYYY-MM-DD
func (s *Slot) DateKey() string {
	return s.SlotDate.Format(DateLayout)
}

// DateOnly truncates t to midnight UTC on its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsLinkedTo checks both directions of the slot/appointment link and the scheduled time
func (s *Slot) IsLinkedTo(a *Appointment) bool {
	if a == nil || a.SlotID == nil || *a.SlotID != s.ID {
		return false
	}
	if !s.IsClaimed() || s.AppointmentID == nil || *s.AppointmentID != a.ID {
		return false
	}
	return a.ScheduledAt.Equal(s.StartsAt())
}
