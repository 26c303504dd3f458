package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	// Create returns ErrDuplicateAppointmentCode or ErrDoctorTimeTaken on the matching unique key.
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByCode(db *gorm.DB, code string) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)

	// ExistsForDoctorAt is the exact-datetime check used by legacy bookings.
	ExistsForDoctorAt(db *gorm.DB, doctorID uuid.UUID, at time.Time) (bool, error)

	// FindUpcoming* exclude COMPLETED and CANCELED and order by scheduled_at.
	FindUpcomingByDoctorID(db *gorm.DB, doctorID uuid.UUID, from time.Time) ([]entity.Appointment, error)
	FindUpcomingByPatientID(db *gorm.DB, patientID uuid.UUID, from time.Time) ([]entity.Appointment, error)

	// UpdateStatus changes status only if it still equals from.
	// Returns affected rows: 1 = success, 0 = status changed concurrently.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
