package repository

import "errors"

// Unique-key violations that callers act on. Implementations map storage errors to these.
var (
	ErrDuplicateAppointmentCode = errors.New("appointment code already exists")
	ErrDoctorTimeTaken          = errors.New("doctor already has an appointment at this time")
)
