package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/pkg/apperror"
	"go-clinic-scheduling/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const compensationTimeout = 5 * time.Second

var ErrPatientNotFound = apperror.NotFound("patient not found")

// AppointmentUsecase is the booking boundary: it sequences slot claims and releases
// with the appointment state machine and emits lifecycle events after each change.
type AppointmentUsecase interface {
	BookSlot(ctx context.Context, req *dto.BookSlotRequest) (*dto.AppointmentResponse, error)
	BookLegacy(ctx context.Context, req *dto.LegacyBookingRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
	TransitionAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error

	GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetAppointmentByCode(ctx context.Context, code string) (*dto.AppointmentResponse, error)
	ListUpcomingForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListUpcomingForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentPageResponse, error)
}

type appointmentUsecase struct {
	transactor       repository.Transactor
	log              *logrus.Logger
	engine           SlotBookingEngine
	lifecycle        AppointmentLifecycle
	doctorRepo       repository.DoctorProfileRepository
	patientRepo      repository.PatientProfileRepository
	notificationSink service.NotificationSink
	auditService     service.AuditService
	clock            clock.Clock
}

func NewAppointmentUsecase(
	transactor repository.Transactor,
	log *logrus.Logger,
	engine SlotBookingEngine,
	lifecycle AppointmentLifecycle,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	notificationSink service.NotificationSink,
	auditService service.AuditService,
	clk clock.Clock,
) AppointmentUsecase {
	return &appointmentUsecase{
		transactor:       transactor,
		log:              log,
		engine:           engine,
		lifecycle:        lifecycle,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		notificationSink: notificationSink,
		auditService:     auditService,
		clock:            clk,
	}
}

// BookSlot claims the slot and creates its appointment.
//
// Flow:
// 1. Validate patient exists and the slot belongs to the doctor
// 2. Claim the slot for a fresh appointment id (version compare-and-swap)
// 3. Insert the appointment
// 4. If the insert fails -> compensate: release the slot held by that id
// 5. Publish the SCHEDULED event and audit
func (u *appointmentUsecase) BookSlot(ctx context.Context, req *dto.BookSlotRequest) (*dto.AppointmentResponse, error) {
	// Step 1: Validate references
	if err := u.ensurePatient(ctx, req.PatientID); err != nil {
		return nil, err
	}

	slot, err := u.engine.Get(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if slot.DoctorID != req.DoctorID {
		return nil, ErrSlotDoctorMismatch
	}

	// Step 2: Claim
	appointmentID := uuid.New()
	claimed, err := u.engine.Claim(ctx, req.SlotID, appointmentID)
	if err != nil {
		return nil, err
	}

	// Step 3: Insert appointment
	appointment, err := u.lifecycle.CreateFromSlotClaim(ctx, claimed, req.DoctorID, req.PatientID)
	if err != nil {
		u.log.Errorf("Failed to create appointment for claimed slot %s, compensating: %+v", claimed.ID, err)

		// Step 4: COMPENSATE - the request may already be canceled
		compCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
		defer cancel()
		if _, releaseErr := u.engine.ReleaseHeldBy(u.transactor.DB(compCtx), claimed.ID, appointmentID); releaseErr != nil {
			u.log.Errorf("CRITICAL: Failed to release slot %s after appointment insert failure: %+v", claimed.ID, releaseErr)
		}
		u.engine.InvalidateListing(compCtx, claimed)

		return nil, err
	}

	// Step 5: Side effects
	u.notify(ctx, appointment)
	u.audit(ctx, entity.AuditActionAppointmentCreated,
		fmt.Sprintf("appointment %s booked on slot %s", appointment.Code, claimed.ID),
		entity.JSON{"appointment_id": appointment.ID.String(), "slot_id": claimed.ID.String(), "patient_id": req.PatientID.String()})

	u.log.Infof("Slot booked: slot=%s, appointment=%s, code=%s", claimed.ID, appointment.ID, appointment.Code)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) BookLegacy(ctx context.Context, req *dto.LegacyBookingRequest) (*dto.AppointmentResponse, error) {
	if err := u.ensureDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}
	if err := u.ensurePatient(ctx, req.PatientID); err != nil {
		return nil, err
	}

	appointment, err := u.lifecycle.CreateLegacy(ctx, req.DoctorID, req.PatientID, req.ScheduledAt)
	if err != nil {
		return nil, err
	}

	u.notify(ctx, appointment)
	u.audit(ctx, entity.AuditActionAppointmentCreated,
		fmt.Sprintf("legacy appointment %s booked at %s", appointment.Code, appointment.ScheduledAt.Format(time.RFC3339)),
		entity.JSON{"appointment_id": appointment.ID.String(), "patient_id": req.PatientID.String(), "legacy": true})

	return converter.AppointmentToResponse(appointment), nil
}

// CancelAppointment moves the appointment to CANCELED and reopens its slot in one transaction
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	appointment, err := u.transition(ctx, appointmentID, entity.AppointmentStatusCanceled)
	if err != nil {
		return err
	}

	u.audit(ctx, entity.AuditActionAppointmentCanceled,
		fmt.Sprintf("appointment %s canceled", appointment.Code),
		entity.JSON{"appointment_id": appointment.ID.String()})
	return nil
}

func (u *appointmentUsecase) TransitionAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	next := entity.AppointmentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	appointment, err := u.transition(ctx, appointmentID, next)
	if err != nil {
		return nil, err
	}

	u.audit(ctx, entity.AuditActionAppointmentStatusUpdated,
		fmt.Sprintf("appointment %s status updated to %s", appointment.Code, next),
		entity.JSON{"appointment_id": appointment.ID.String(), "status": string(next)})
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) transition(ctx context.Context, appointmentID uuid.UUID, next entity.AppointmentStatus) (*entity.Appointment, error) {
	var appointment *entity.Appointment
	var released *entity.Slot

	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		appointment, err = u.lifecycle.Transition(tx, appointmentID, next)
		if err != nil {
			return err
		}

		if next == entity.AppointmentStatusCanceled && appointment.HasSlot() {
			released, err = u.engine.ReleaseHeldBy(tx, *appointment.SlotID, appointment.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.engine.InvalidateListing(ctx, released)
	u.notify(ctx, appointment)
	return appointment, nil
}

// DeleteAppointment removes the appointment and reopens its slot in one transaction. No lifecycle event is emitted.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	var deleted *entity.Appointment
	var released *entity.Slot

	err := u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		deleted, err = u.lifecycle.Delete(tx, appointmentID)
		if err != nil {
			return err
		}

		if deleted.HasSlot() {
			released, err = u.engine.ReleaseHeldBy(tx, *deleted.SlotID, deleted.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.engine.InvalidateListing(ctx, released)
	u.audit(ctx, entity.AuditActionAppointmentDeleted,
		fmt.Sprintf("appointment %s deleted", deleted.Code),
		entity.JSON{"appointment_id": deleted.ID.String(), "status": string(deleted.Status)})
	return nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.lifecycle.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointmentByCode(ctx context.Context, code string) (*dto.AppointmentResponse, error) {
	appointment, err := u.lifecycle.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListUpcomingForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	if err := u.ensureDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	appointments, err := u.lifecycle.ListUpcomingForDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListUpcomingForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	if err := u.ensurePatient(ctx, patientID); err != nil {
		return nil, err
	}

	appointments, err := u.lifecycle.ListUpcomingForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentPageResponse, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, ErrInvalidAppointmentStatus
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	appointments, total, err := u.lifecycle.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentPageResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Page:         filter.Page,
		Limit:        filter.Limit,
		Total:        total,
	}, nil
}

// notify never fails the caller; delivery problems are only logged
func (u *appointmentUsecase) notify(ctx context.Context, appointment *entity.Appointment) {
	event := entity.NewLifecycleEvent(appointment, u.clock.Now())
	if err := u.notificationSink.Publish(ctx, event); err != nil {
		u.log.Warnf("Failed to publish lifecycle event for appointment %s (%s): %+v", appointment.ID, appointment.Status, err)
	}
}

func (u *appointmentUsecase) audit(ctx context.Context, action, detail string, metadata entity.JSON) {
	recordAudit(ctx, u.log, u.auditService, action, detail, metadata)
}

func (u *appointmentUsecase) ensureDoctor(ctx context.Context, doctorID uuid.UUID) error {
	doctor, err := u.doctorRepo.FindByUserID(u.transactor.DB(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return apperror.Wrap(err, "find doctor")
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	return nil
}

func (u *appointmentUsecase) ensurePatient(ctx context.Context, patientID uuid.UUID) error {
	patient, err := u.patientRepo.FindByUserID(u.transactor.DB(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return apperror.Wrap(err, "find patient")
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	return nil
}
