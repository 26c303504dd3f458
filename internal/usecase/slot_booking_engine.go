package usecase

import (
	"context"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotNotFound            = apperror.NotFound("slot not found")
	ErrSlotNotAvailable        = apperror.Conflict("slot not available")
	ErrSlotClaimedConcurrently = apperror.Conflict("slot was claimed concurrently")
)

// SlotBookingEngine is the only path that changes a slot's status, version or appointment link.
type SlotBookingEngine interface {
	// Claim moves an OPEN slot to CLAIMED for appointmentID with a single version-guarded write.
	// Losing the race returns ErrSlotClaimedConcurrently; it is not retried here.
	// After a timeout the caller must re-read the slot before trying again.
	Claim(ctx context.Context, slotID, appointmentID uuid.UUID) (*entity.Slot, error)

	// Release reopens the slot whoever holds it. Releasing an OPEN slot succeeds without change.
	Release(ctx context.Context, slotID uuid.UUID) (*entity.Slot, error)

	// ReleaseHeldBy reopens the slot only while it is still linked to appointmentID.
	// It runs on db so callers can include it in their own transaction, and it does not
	// touch the listing cache; call InvalidateListing once that transaction commits.
	ReleaseHeldBy(db *gorm.DB, slotID, appointmentID uuid.UUID) (*entity.Slot, error)

	Get(ctx context.Context, slotID uuid.UUID) (*entity.Slot, error)
	FindOpen(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Slot, error)
	FindOpenInRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error)
	InvalidateListing(ctx context.Context, slot *entity.Slot)
}

type slotBookingEngine struct {
	transactor repository.Transactor
	log        *logrus.Logger
	slotRepo   repository.SlotRepository
	slotCache  *service.SlotCacheService
}

func NewSlotBookingEngine(
	transactor repository.Transactor,
	log *logrus.Logger,
	slotRepo repository.SlotRepository,
	slotCache *service.SlotCacheService,
) SlotBookingEngine {
	return &slotBookingEngine{
		transactor: transactor,
		log:        log,
		slotRepo:   slotRepo,
		slotCache:  slotCache,
	}
}

func (e *slotBookingEngine) Claim(ctx context.Context, slotID, appointmentID uuid.UUID) (*entity.Slot, error) {
	db := e.transactor.DB(ctx)

	slot, err := e.slotRepo.FindByID(db, slotID)
	if err != nil {
		e.log.Warnf("Failed to find slot %s: %+v", slotID, err)
		return nil, apperror.Wrap(err, "find slot")
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if !slot.IsOpen() {
		return nil, ErrSlotNotAvailable
	}

	rows, err := e.slotRepo.ClaimIfVersion(db, slot.ID, slot.Version, appointmentID)
	if err != nil {
		e.log.Warnf("Failed to claim slot %s: %+v", slotID, err)
		return nil, apperror.Wrap(err, "claim slot")
	}
	if rows == 0 {
		e.log.Debugf("Slot %s lost claim race at version %d", slotID, slot.Version)
		return nil, ErrSlotClaimedConcurrently
	}

	slot.Status = entity.SlotStatusClaimed
	slot.AppointmentID = &appointmentID
	slot.Version++

	e.InvalidateListing(ctx, slot)

	e.log.Infof("Slot claimed: id=%s, version=%d, appointment=%s", slot.ID, slot.Version, appointmentID)
	return slot, nil
}

func (e *slotBookingEngine) Release(ctx context.Context, slotID uuid.UUID) (*entity.Slot, error) {
	db := e.transactor.DB(ctx)

	slot, err := e.release(db, slotID, func() (int64, error) {
		return e.slotRepo.Release(db, slotID)
	})
	if err != nil {
		return nil, err
	}

	e.InvalidateListing(ctx, slot)
	return slot, nil
}

func (e *slotBookingEngine) ReleaseHeldBy(db *gorm.DB, slotID, appointmentID uuid.UUID) (*entity.Slot, error) {
	return e.release(db, slotID, func() (int64, error) {
		return e.slotRepo.ReleaseIfHeldBy(db, slotID, appointmentID)
	})
}

func (e *slotBookingEngine) release(db *gorm.DB, slotID uuid.UUID, write func() (int64, error)) (*entity.Slot, error) {
	rows, err := write()
	if err != nil {
		e.log.Warnf("Failed to release slot %s: %+v", slotID, err)
		return nil, apperror.Wrap(err, "release slot")
	}

	slot, err := e.slotRepo.FindByID(db, slotID)
	if err != nil {
		e.log.Warnf("Failed to find slot %s: %+v", slotID, err)
		return nil, apperror.Wrap(err, "find slot")
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	if rows == 0 {
		e.log.Debugf("Slot %s already released", slotID)
	} else {
		e.log.Infof("Slot released: id=%s, version=%d", slot.ID, slot.Version)
	}
	return slot, nil
}

func (e *slotBookingEngine) Get(ctx context.Context, slotID uuid.UUID) (*entity.Slot, error) {
	slot, err := e.slotRepo.FindByID(e.transactor.DB(ctx), slotID)
	if err != nil {
		e.log.Warnf("Failed to find slot %s: %+v", slotID, err)
		return nil, apperror.Wrap(err, "find slot")
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	return slot, nil
}

// FindOpen is advisory: a listed slot may be claimed before the caller acts on it.
func (e *slotBookingEngine) FindOpen(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Slot, error) {
	date = entity.DateOnly(date)

	slots, err := e.slotCache.GetOrLoad(ctx, doctorID, date, func(ctx context.Context) ([]entity.Slot, error) {
		return e.slotRepo.FindOpenByDoctorAndDateRange(e.transactor.DB(ctx), doctorID, date, date)
	})
	if err != nil {
		e.log.Warnf("Failed to find open slots for doctor %s on %s: %+v", doctorID, date.Format(entity.DateLayout), err)
		return nil, apperror.Wrap(err, "find open slots")
	}
	return slots, nil
}

func (e *slotBookingEngine) FindOpenInRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error) {
	from, to = entity.DateOnly(from), entity.DateOnly(to)
	if to.Before(from) {
		return []entity.Slot{}, nil
	}

	slots, err := e.slotRepo.FindOpenByDoctorAndDateRange(e.transactor.DB(ctx), doctorID, from, to)
	if err != nil {
		e.log.Warnf("Failed to find open slots for doctor %s: %+v", doctorID, err)
		return nil, apperror.Wrap(err, "find open slots")
	}
	return slots, nil
}

func (e *slotBookingEngine) InvalidateListing(ctx context.Context, slot *entity.Slot) {
	if slot == nil {
		return
	}
	e.slotCache.Invalidate(ctx, slot.DoctorID, slot.SlotDate)
}
