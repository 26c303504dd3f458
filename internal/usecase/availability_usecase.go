package usecase

import (
	"context"
	"fmt"
	"time"

	"go-clinic-scheduling/config"
	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidDate       = apperror.Validation("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = apperror.Validation("invalid time format, use HH:MM")
)

// AvailabilityUsecase serves schedule management, slot generation and open-slot listings.
type AvailabilityUsecase interface {
	SetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityResponse, error)
	GetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error)
	GenerateSlots(ctx context.Context, doctorID uuid.UUID, req *dto.GenerateSlotsRequest) (*dto.SlotListResponse, error)
	ListOpenSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) (*dto.SlotListResponse, error)
	ListOpenSlotsInRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) (*dto.SlotListResponse, error)
}

type availabilityUsecase struct {
	log          *logrus.Logger
	registry     ScheduleRegistry
	generator    SlotGenerator
	engine       SlotBookingEngine
	auditService service.AuditService

	defaultDuration int
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	registry ScheduleRegistry,
	generator SlotGenerator,
	engine SlotBookingEngine,
	auditService service.AuditService,
	cfg config.BookingConfig,
) AvailabilityUsecase {
	return &availabilityUsecase{
		log:             log,
		registry:        registry,
		generator:       generator,
		engine:          engine,
		auditService:    auditService,
		defaultDuration: cfg.DefaultSlotDurationMinutes,
	}
}

func (u *availabilityUsecase) SetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	windows, err := converter.WindowRequestsToEntities(req.Windows)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	stored, err := u.registry.SetWeeklyAvailability(ctx, doctorID, windows)
	if err != nil {
		return nil, err
	}

	u.audit(ctx, entity.AuditActionScheduleUpdated,
		fmt.Sprintf("weekly availability of doctor %s replaced with %d windows", doctorID, len(stored)),
		entity.JSON{"doctor_id": doctorID.String(), "windows": len(stored)})

	return converter.AvailabilityToResponse(doctorID, stored), nil
}

func (u *availabilityUsecase) GetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	windows, err := u.registry.GetWeeklyAvailability(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return converter.AvailabilityToResponse(doctorID, windows), nil
}

// GenerateSlots returns only the slots this call created
func (u *availabilityUsecase) GenerateSlots(ctx context.Context, doctorID uuid.UUID, req *dto.GenerateSlotsRequest) (*dto.SlotListResponse, error) {
	startDate, err := time.Parse(entity.DateLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := time.Parse(entity.DateLayout, req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// Only an omitted duration takes the default; an explicit zero is rejected by the generator
	duration := u.defaultDuration
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	slots, err := u.generator.Generate(ctx, doctorID, startDate, endDate, duration)
	if err != nil {
		return nil, err
	}

	u.audit(ctx, entity.AuditActionSlotsGenerated,
		fmt.Sprintf("%d slots generated for doctor %s from %s to %s", len(slots), doctorID, req.StartDate, req.EndDate),
		entity.JSON{"doctor_id": doctorID.String(), "start_date": req.StartDate, "end_date": req.EndDate, "created": len(slots)})

	return converter.SlotsToListResponse(slots), nil
}

func (u *availabilityUsecase) ListOpenSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) (*dto.SlotListResponse, error) {
	slots, err := u.engine.FindOpen(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	return converter.SlotsToListResponse(slots), nil
}

func (u *availabilityUsecase) ListOpenSlotsInRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) (*dto.SlotListResponse, error) {
	slots, err := u.engine.FindOpenInRange(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	return converter.SlotsToListResponse(slots), nil
}

func (u *availabilityUsecase) audit(ctx context.Context, action, detail string, metadata entity.JSON) {
	recordAudit(ctx, u.log, u.auditService, action, detail, metadata)
}

// recordAudit attributes the entry to the authenticated user when there is one
func recordAudit(ctx context.Context, log *logrus.Logger, auditService service.AuditService, action, detail string, metadata entity.JSON) {
	var actorID *uuid.UUID
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		actorID = &userID
	}
	if err := auditService.Record(ctx, actorID, action, detail, metadata); err != nil {
		log.Warnf("Audit %s not recorded: %+v", action, err)
	}
}
