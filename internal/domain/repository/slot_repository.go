package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Slot, error)
	// FindByDoctorAndDateRange returns slots of every status, from and to inclusive.
	FindByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error)
	FindOpenByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error)

	// CreateIfAbsent inserts the slot unless (doctor_id, slot_date, start_time) exists.
	// Returns false when the unique key already existed.
	CreateIfAbsent(db *gorm.DB, slot *entity.Slot) (bool, error)

	// ClaimIfVersion atomically sets status=CLAIMED, links the appointment and bumps the
	// version, only if the stored version still equals expectedVersion and the slot is OPEN.
	// Returns affected rows: 1 = claimed, 0 = lost the race.
	ClaimIfVersion(db *gorm.DB, id uuid.UUID, expectedVersion int64, appointmentID uuid.UUID) (int64, error)

	// Release sets status=OPEN, clears the appointment and bumps the version of a CLAIMED slot.
	// Returns affected rows: 0 when the slot was already OPEN.
	Release(db *gorm.DB, id uuid.UUID) (int64, error)

	// ReleaseIfHeldBy is Release restricted to a slot still linked to appointmentID.
	ReleaseIfHeldBy(db *gorm.DB, id uuid.UUID, appointmentID uuid.UUID) (int64, error)
}
