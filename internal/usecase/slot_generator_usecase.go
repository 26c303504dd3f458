package usecase

import (
	"context"
	"fmt"
	"time"

	"go-clinic-scheduling/config"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidSlotDuration = apperror.Validation("slot duration must be positive")
	ErrDoctorInactive      = apperror.Validation("doctor account is inactive")
)

// SlotGenerator expands weekly availability into dated slots.
type SlotGenerator interface {
	// Generate covers [startDate, endDate] inclusive and returns only newly created slots.
	// Existing slots are never touched, so re-running over an overlapping range is a no-op for them.
	Generate(ctx context.Context, doctorID uuid.UUID, startDate, endDate time.Time, durationMinutes int) ([]entity.Slot, error)
}

type slotGenerator struct {
	transactor repository.Transactor
	log        *logrus.Logger
	registry   ScheduleRegistry
	slotRepo   repository.SlotRepository
	doctorRepo repository.DoctorProfileRepository
	slotCache  *service.SlotCacheService

	maxDays         int
}

func NewSlotGenerator(
	transactor repository.Transactor,
	log *logrus.Logger,
	registry ScheduleRegistry,
	slotRepo repository.SlotRepository,
	doctorRepo repository.DoctorProfileRepository,
	slotCache *service.SlotCacheService,
	cfg config.BookingConfig,
) SlotGenerator {
	return &slotGenerator{
		transactor:      transactor,
		log:             log,
		registry:        registry,
		slotRepo:        slotRepo,
		doctorRepo:      doctorRepo,
		slotCache:       slotCache,
		maxDays:         cfg.MaxGenerationDays,
	}
}

func (g *slotGenerator) Generate(ctx context.Context, doctorID uuid.UUID, startDate, endDate time.Time, durationMinutes int) ([]entity.Slot, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidSlotDuration
	}

	doctor, err := g.doctorRepo.FindByUserID(g.transactor.DB(ctx), doctorID)
	if err != nil {
		g.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, apperror.Wrap(err, "find doctor")
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsActive() {
		return nil, ErrDoctorInactive
	}

	startDate, endDate = entity.DateOnly(startDate), entity.DateOnly(endDate)
	if endDate.Before(startDate) {
		return []entity.Slot{}, nil
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if g.maxDays > 0 && days > g.maxDays {
		return nil, apperror.Validation(fmt.Sprintf("date range must not exceed %d days", g.maxDays))
	}

	created := make([]entity.Slot, 0)
	var touchedDates []time.Time

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		windows, err := g.registry.GetActiveWindows(ctx, doctorID, entity.WeekdayOf(date))
		if err != nil {
			g.slotCache.Invalidate(ctx, doctorID, touchedDates...)
			return nil, err
		}

		before := len(created)
		for _, window := range windows {
			// Only whole slots: a candidate that would overshoot the window end is dropped
			for start := window.StartTime; start.Add(durationMinutes) <= window.EndTime; start = start.Add(durationMinutes) {
				slot := entity.NewOpenSlot(doctorID, date, start, start.Add(durationMinutes))

				// The unique key decides; a concurrent generator that got there first is not an error
				inserted, err := g.slotRepo.CreateIfAbsent(g.transactor.DB(ctx), slot)
				if err != nil {
					g.log.Warnf("Failed to create slot for doctor %s at %s %s: %+v", doctorID, date.Format(entity.DateLayout), start, err)
					g.slotCache.Invalidate(ctx, doctorID, append(touchedDates, date)...)
					return nil, apperror.Wrap(err, "create slot")
				}
				if inserted {
					created = append(created, *slot)
				}
			}
		}

		if len(created) > before {
			touchedDates = append(touchedDates, date)
		}
	}

	g.slotCache.Invalidate(ctx, doctorID, touchedDates...)

	g.log.Infof("Slots generated: doctor=%s, range=%s..%s, duration=%d, created=%d",
		doctorID, startDate.Format(entity.DateLayout), endDate.Format(entity.DateLayout), durationMinutes, len(created))
	return created, nil
}
