package entity_test

import (
	"testing"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	all := []entity.AppointmentStatus{
		entity.AppointmentStatusScheduled,
		entity.AppointmentStatusConfirmed,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCanceled,
	}
	legal := map[entity.AppointmentStatus]map[entity.AppointmentStatus]bool{
		entity.AppointmentStatusScheduled: {
			entity.AppointmentStatusConfirmed: true,
			entity.AppointmentStatusCanceled:  true,
		},
		entity.AppointmentStatusConfirmed: {
			entity.AppointmentStatusCompleted: true,
			entity.AppointmentStatusCanceled:  true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := legal[from][to]
			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestAppointmentStatus_TerminalStatesAreClosed(t *testing.T) {
	for _, s := range []entity.AppointmentStatus{entity.AppointmentStatusCompleted, entity.AppointmentStatusCanceled} {
		assert.True(t, s.IsTerminal())
		for _, to := range []entity.AppointmentStatus{
			entity.AppointmentStatusScheduled,
			entity.AppointmentStatusConfirmed,
			entity.AppointmentStatusCompleted,
			entity.AppointmentStatusCanceled,
		} {
			assert.False(t, s.CanTransitionTo(to))
		}
	}
}

func TestAppointmentStatus_IsValid(t *testing.T) {
	assert.True(t, entity.AppointmentStatusConfirmed.IsValid())
	assert.False(t, entity.AppointmentStatus("PENDING").IsValid())
	assert.False(t, entity.AppointmentStatus("").IsValid())
}
