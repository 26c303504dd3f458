package usecase

import (
	"context"
	"fmt"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound     = apperror.NotFound("doctor not found")
	ErrInvalidWeekday     = apperror.Validation("invalid weekday")
	ErrInvalidWindowRange = apperror.Validation("window start time must be before end time")
)

// ScheduleRegistry stores each doctor's recurring weekly availability.
type ScheduleRegistry interface {
	// SetWeeklyAvailability replaces every window of the doctor, all or nothing.
	SetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID, windows []entity.WeeklyAvailability) ([]entity.WeeklyAvailability, error)
	GetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID) ([]entity.WeeklyAvailability, error)
	// GetActiveWindows is ordered by start time.
	GetActiveWindows(ctx context.Context, doctorID uuid.UUID, weekday entity.Weekday) ([]entity.WeeklyAvailability, error)
}

type scheduleRegistry struct {
	transactor       repository.Transactor
	log              *logrus.Logger
	availabilityRepo repository.WeeklyAvailabilityRepository
	doctorRepo       repository.DoctorProfileRepository
}

func NewScheduleRegistry(
	transactor repository.Transactor,
	log *logrus.Logger,
	availabilityRepo repository.WeeklyAvailabilityRepository,
	doctorRepo repository.DoctorProfileRepository,
) ScheduleRegistry {
	return &scheduleRegistry{
		transactor:       transactor,
		log:              log,
		availabilityRepo: availabilityRepo,
		doctorRepo:       doctorRepo,
	}
}

func (r *scheduleRegistry) SetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID, windows []entity.WeeklyAvailability) ([]entity.WeeklyAvailability, error) {
	if err := r.ensureDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	rows := make([]entity.WeeklyAvailability, 0, len(windows))
	for i, window := range windows {
		weekday, ok := entity.ParseWeekday(string(window.Weekday))
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("window %d: %s", i, ErrInvalidWeekday.Message))
		}
		if !window.HasValidRange() {
			return nil, apperror.Validation(fmt.Sprintf("window %d: %s", i, ErrInvalidWindowRange.Message))
		}
		rows = append(rows, entity.WeeklyAvailability{
			DoctorID:  doctorID,
			Weekday:   weekday,
			StartTime: window.StartTime,
			EndTime:   window.EndTime,
			Active:    window.Active,
		})
	}

	var stored []entity.WeeklyAvailability
	err := r.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := r.availabilityRepo.ReplaceForDoctor(tx, doctorID, rows); err != nil {
			return err
		}

		var err error
		stored, err = r.availabilityRepo.FindByDoctorID(tx, doctorID)
		return err
	})
	if err != nil {
		r.log.Warnf("Failed to replace weekly availability for doctor %s: %+v", doctorID, err)
		return nil, apperror.Wrap(err, "replace weekly availability")
	}

	r.log.Infof("Weekly availability replaced: doctor=%s, windows=%d", doctorID, len(stored))
	return stored, nil
}

func (r *scheduleRegistry) GetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID) ([]entity.WeeklyAvailability, error) {
	if err := r.ensureDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	windows, err := r.availabilityRepo.FindByDoctorID(r.transactor.DB(ctx), doctorID)
	if err != nil {
		r.log.Warnf("Failed to find weekly availability for doctor %s: %+v", doctorID, err)
		return nil, apperror.Wrap(err, "find weekly availability")
	}
	return windows, nil
}

func (r *scheduleRegistry) GetActiveWindows(ctx context.Context, doctorID uuid.UUID, weekday entity.Weekday) ([]entity.WeeklyAvailability, error) {
	windows, err := r.availabilityRepo.FindActiveByDoctorAndWeekday(r.transactor.DB(ctx), doctorID, weekday)
	if err != nil {
		r.log.Warnf("Failed to find active windows for doctor %s on %s: %+v", doctorID, weekday, err)
		return nil, apperror.Wrap(err, "find active windows")
	}
	return windows, nil
}

func (r *scheduleRegistry) ensureDoctor(ctx context.Context, doctorID uuid.UUID) error {
	doctor, err := r.doctorRepo.FindByUserID(r.transactor.DB(ctx), doctorID)
	if err != nil {
		r.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return apperror.Wrap(err, "find doctor")
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	return nil
}
