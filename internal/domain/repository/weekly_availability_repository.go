package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeeklyAvailabilityRepository interface {
	// ReplaceForDoctor deletes every window for the doctor then inserts windows.
	// Callers run it inside a transaction.
	ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, windows []entity.WeeklyAvailability) error
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklyAvailability, error)
	FindActiveByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday entity.Weekday) ([]entity.WeeklyAvailability, error)
}
