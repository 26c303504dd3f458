package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"go-clinic-scheduling/config"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/pkg/apperror"
	"go-clinic-scheduling/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxCodeAttempts = 5

var (
	ErrAppointmentNotFound            = apperror.NotFound("appointment not found")
	ErrInvalidAppointmentStatus       = apperror.Validation("invalid appointment status")
	ErrAppointmentChangedConcurrently = apperror.Conflict("appointment was updated concurrently")
	ErrDoctorTimeTaken                = apperror.Conflict("doctor already has an appointment at this time")
	ErrLegacyBookingDisabled          = apperror.Validation("legacy booking is disabled")
	ErrSlotNotClaimedForBooking       = apperror.Validation("slot is not claimed for this appointment")
	ErrSlotDoctorMismatch             = apperror.Validation("slot does not belong to doctor")
)

// AppointmentLifecycle owns the appointment status machine.
//
// Methods taking a *gorm.DB run on the caller's session so they can share a
// transaction with a slot release. Lifecycle events are emitted by the caller
// once that work has committed.
type AppointmentLifecycle interface {
	// CreateFromSlotClaim persists a SCHEDULED appointment for a slot already claimed on its behalf.
	// If it fails the caller must release the slot.
	CreateFromSlotClaim(ctx context.Context, slot *entity.Slot, doctorID, patientID uuid.UUID) (*entity.Appointment, error)

	// CreateLegacy books a doctor at an exact time without a slot.
	CreateLegacy(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time) (*entity.Appointment, error)

	Transition(tx *gorm.DB, appointmentID uuid.UUID, next entity.AppointmentStatus) (*entity.Appointment, error)
	Delete(tx *gorm.DB, appointmentID uuid.UUID) (*entity.Appointment, error)

	Get(ctx context.Context, appointmentID uuid.UUID) (*entity.Appointment, error)
	GetByCode(ctx context.Context, code string) (*entity.Appointment, error)
	ListUpcomingForDoctor(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error)
	ListUpcomingForPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	List(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
}

type appointmentLifecycle struct {
	transactor      repository.Transactor
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	clock           clock.Clock

	legacyEnabled bool
}

func NewAppointmentLifecycle(
	transactor repository.Transactor,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	clk clock.Clock,
	cfg config.BookingConfig,
) AppointmentLifecycle {
	return &appointmentLifecycle{
		transactor:      transactor,
		log:             log,
		appointmentRepo: appointmentRepo,
		clock:           clk,
		legacyEnabled:   cfg.LegacyBookingEnabled,
	}
}

func (l *appointmentLifecycle) CreateFromSlotClaim(ctx context.Context, slot *entity.Slot, doctorID, patientID uuid.UUID) (*entity.Appointment, error) {
	if slot.DoctorID != doctorID {
		return nil, ErrSlotDoctorMismatch
	}
	if !slot.IsClaimed() || slot.AppointmentID == nil {
		return nil, ErrSlotNotClaimedForBooking
	}

	slotID := slot.ID
	appointment := &entity.Appointment{
		ID:          *slot.AppointmentID,
		DoctorID:    doctorID,
		PatientID:   patientID,
		SlotID:      &slotID,
		ScheduledAt: slot.StartsAt(),
		Status:      entity.AppointmentStatusScheduled,
	}

	if err := l.create(ctx, appointment); err != nil {
		return nil, err
	}

	l.log.Infof("Appointment created: id=%s, slot=%s, code=%s", appointment.ID, slotID, appointment.Code)
	return appointment, nil
}

// CreateLegacy compares exact start times only; overlapping appointments of different lengths are not detected.
func (l *appointmentLifecycle) CreateLegacy(ctx context.Context, doctorID, patientID uuid.UUID, at time.Time) (*entity.Appointment, error) {
	if !l.legacyEnabled {
		return nil, ErrLegacyBookingDisabled
	}

	at = at.UTC()
	exists, err := l.appointmentRepo.ExistsForDoctorAt(l.transactor.DB(ctx), doctorID, at)
	if err != nil {
		l.log.Warnf("Failed to check appointments of doctor %s at %s: %+v", doctorID, at, err)
		return nil, apperror.Wrap(err, "check doctor availability")
	}
	if exists {
		return nil, ErrDoctorTimeTaken
	}

	appointment := &entity.Appointment{
		ID:          uuid.New(),
		DoctorID:    doctorID,
		PatientID:   patientID,
		ScheduledAt: at,
		Status:      entity.AppointmentStatusScheduled,
	}

	// Two requests can both pass the check above; the partial unique index settles it
	if err := l.create(ctx, appointment); err != nil {
		return nil, err
	}

	l.log.Infof("Legacy appointment created: id=%s, doctor=%s, at=%s, code=%s", appointment.ID, doctorID, at.Format(time.RFC3339), appointment.Code)
	return appointment, nil
}

// create assigns a fresh code on every attempt until the code is unique
func (l *appointmentLifecycle) create(ctx context.Context, appointment *entity.Appointment) error {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		appointment.Code = generateAppointmentCode(appointment.ScheduledAt)

		err := l.appointmentRepo.Create(l.transactor.DB(ctx), appointment)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repository.ErrDuplicateAppointmentCode):
			l.log.Debugf("Appointment code %s collided, attempt %d", appointment.Code, attempt)
			continue
		case errors.Is(err, repository.ErrDoctorTimeTaken):
			return ErrDoctorTimeTaken
		default:
			l.log.Warnf("Failed to create appointment %s: %+v", appointment.ID, err)
			return apperror.Wrap(err, "create appointment")
		}
	}

	l.log.Errorf("Failed to create appointment %s: no unique code after %d attempts", appointment.ID, maxCodeAttempts)
	return apperror.Wrap(repository.ErrDuplicateAppointmentCode, "create appointment")
}

func (l *appointmentLifecycle) Transition(tx *gorm.DB, appointmentID uuid.UUID, next entity.AppointmentStatus) (*entity.Appointment, error) {
	if !next.IsValid() {
		return nil, ErrInvalidAppointmentStatus
	}

	appointment, err := l.find(tx, appointmentID)
	if err != nil {
		return nil, err
	}

	current := appointment.Status
	if !current.CanTransitionTo(next) {
		return nil, apperror.InvalidTransition(string(current), string(next))
	}

	// Guarded by the status read above so two concurrent moves cannot both apply
	rows, err := l.appointmentRepo.UpdateStatus(tx, appointmentID, current, next)
	if err != nil {
		l.log.Warnf("Failed to update appointment %s status: %+v", appointmentID, err)
		return nil, apperror.Wrap(err, "update appointment status")
	}
	if rows == 0 {
		return nil, ErrAppointmentChangedConcurrently
	}

	appointment.Status = next
	appointment.UpdatedAt = l.clock.Now()

	l.log.Infof("Appointment status updated: id=%s, %s -> %s", appointmentID, current, next)
	return appointment, nil
}

func (l *appointmentLifecycle) Delete(tx *gorm.DB, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := l.find(tx, appointmentID)
	if err != nil {
		return nil, err
	}

	rows, err := l.appointmentRepo.Delete(tx, appointmentID)
	if err != nil {
		l.log.Warnf("Failed to delete appointment %s: %+v", appointmentID, err)
		return nil, apperror.Wrap(err, "delete appointment")
	}
	if rows == 0 {
		return nil, ErrAppointmentNotFound
	}

	l.log.Infof("Appointment deleted: id=%s", appointmentID)
	return appointment, nil
}

func (l *appointmentLifecycle) Get(ctx context.Context, appointmentID uuid.UUID) (*entity.Appointment, error) {
	return l.find(l.transactor.DB(ctx), appointmentID)
}

func (l *appointmentLifecycle) GetByCode(ctx context.Context, code string) (*entity.Appointment, error) {
	appointment, err := l.appointmentRepo.FindByCode(l.transactor.DB(ctx), code)
	if err != nil {
		l.log.Warnf("Failed to find appointment by code %s: %+v", code, err)
		return nil, apperror.Wrap(err, "find appointment")
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

func (l *appointmentLifecycle) ListUpcomingForDoctor(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	appointments, err := l.appointmentRepo.FindUpcomingByDoctorID(l.transactor.DB(ctx), doctorID, l.startOfToday())
	if err != nil {
		l.log.Warnf("Failed to find upcoming appointments for doctor %s: %+v", doctorID, err)
		return nil, apperror.Wrap(err, "find upcoming appointments")
	}
	return appointments, nil
}

func (l *appointmentLifecycle) ListUpcomingForPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	appointments, err := l.appointmentRepo.FindUpcomingByPatientID(l.transactor.DB(ctx), patientID, l.startOfToday())
	if err != nil {
		l.log.Warnf("Failed to find upcoming appointments for patient %s: %+v", patientID, err)
		return nil, apperror.Wrap(err, "find upcoming appointments")
	}
	return appointments, nil
}

func (l *appointmentLifecycle) List(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	appointments, total, err := l.appointmentRepo.FindAll(l.transactor.DB(ctx), filter)
	if err != nil {
		l.log.Warnf("Failed to list appointments: %+v", err)
		return nil, 0, apperror.Wrap(err, "list appointments")
	}
	return appointments, total, nil
}

func (l *appointmentLifecycle) find(db *gorm.DB, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := l.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		l.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, apperror.Wrap(err, "find appointment")
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

func (l *appointmentLifecycle) startOfToday() time.Time {
	return entity.DateOnly(l.clock.Now().UTC())
}

// generateAppointmentCode generates an appointment code: AP-YYYYMMDD-XXXXXX
func generateAppointmentCode(scheduledAt time.Time) string {
	dateStr := scheduledAt.Format("20060102")
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	randomStr := fmt.Sprintf("%06X", randomBytes)
	return fmt.Sprintf("AP-%s-%s", dateStr, randomStr)
}
