package entity_test

import (
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWeekdayOf(t *testing.T) {
	// 2025-03-03 is a Monday
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, entity.Monday, entity.WeekdayOf(monday))
	assert.Equal(t, entity.Sunday, entity.WeekdayOf(monday.AddDate(0, 0, 6)))
}

func TestParseWeekday(t *testing.T) {
	w, ok := entity.ParseWeekday(" friday ")
	assert.True(t, ok)
	assert.Equal(t, entity.Friday, w)

	_, ok = entity.ParseWeekday("FUNDAY")
	assert.False(t, ok)
}

func TestWeeklyAvailability_HasValidRange(t *testing.T) {
	w := entity.WeeklyAvailability{StartTime: entity.NewClockTime(9, 0), EndTime: entity.NewClockTime(10, 0)}
	assert.True(t, w.HasValidRange())

	w.EndTime = w.StartTime
	assert.False(t, w.HasValidRange())
}

func TestSlot_StartsAt(t *testing.T) {
	s := entity.NewOpenSlot(uuid.New(), time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC), entity.NewClockTime(9, 30), entity.NewClockTime(10, 0))

	assert.True(t, s.IsOpen())
	assert.Equal(t, int64(0), s.Version)
	assert.Equal(t, "2025-03-03", s.DateKey())
	assert.Equal(t, time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC), s.StartsAt())
}

func TestSlot_IsLinkedTo(t *testing.T) {
	slot := entity.NewOpenSlot(uuid.New(), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), entity.NewClockTime(9, 0), entity.NewClockTime(9, 30))
	appointment := &entity.Appointment{ID: uuid.New(), SlotID: &slot.ID, ScheduledAt: slot.StartsAt()}

	assert.False(t, slot.IsLinkedTo(appointment), "open slot is not linked")

	slot.Status = entity.SlotStatusClaimed
	slot.AppointmentID = &appointment.ID
	assert.True(t, slot.IsLinkedTo(appointment))

	appointment.ScheduledAt = appointment.ScheduledAt.Add(30 * time.Minute)
	assert.False(t, slot.IsLinkedTo(appointment), "scheduled time must match slot start")

	assert.False(t, slot.IsLinkedTo(nil))
}
