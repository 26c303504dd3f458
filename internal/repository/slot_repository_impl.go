package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

func (r *slotRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.Where("doctor_id = ? AND slot_date BETWEEN ? AND ?", doctorID, from.Format(entity.DateLayout), to.Format(entity.DateLayout)).
		Order("slot_date ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) FindOpenByDoctorAndDateRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.Where("doctor_id = ? AND slot_date BETWEEN ? AND ? AND status = ?",
		doctorID, from.Format(entity.DateLayout), to.Format(entity.DateLayout), entity.SlotStatusOpen).
		Order("slot_date ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// CreateIfAbsent relies on the unique key so that concurrent generators racing on
// the same candidate both succeed, and only one row is written.
func (r *slotRepository) CreateIfAbsent(db *gorm.DB, slot *entity.Slot) (bool, error) {
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "doctor_id"},
			{Name: "slot_date"},
			{Name: "start_time"},
		},
		DoNothing: true,
	}).Create(slot)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ClaimIfVersion is a single conditional UPDATE; the WHERE clause is the compare-and-swap.
func (r *slotRepository) ClaimIfVersion(db *gorm.DB, id uuid.UUID, expectedVersion int64, appointmentID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("id = ? AND version = ? AND status = ?", id, expectedVersion, entity.SlotStatusOpen).
		Updates(map[string]interface{}{
			"status":         entity.SlotStatusClaimed,
			"appointment_id": appointmentID,
			"version":        gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}

func (r *slotRepository) Release(db *gorm.DB, id uuid.UUID) (int64, error) {
	return r.release(db.Where("id = ? AND status = ?", id, entity.SlotStatusClaimed))
}

func (r *slotRepository) ReleaseIfHeldBy(db *gorm.DB, id uuid.UUID, appointmentID uuid.UUID) (int64, error) {
	return r.release(db.Where("id = ? AND status = ? AND appointment_id = ?", id, entity.SlotStatusClaimed, appointmentID))
}

func (r *slotRepository) release(query *gorm.DB) (int64, error) {
	result := query.Model(&entity.Slot{}).
		Updates(map[string]interface{}{
			"status":         entity.SlotStatusOpen,
			"appointment_id": nil,
			"version":        gorm.Expr("version + 1"),
		})
	return result.RowsAffected, result.Error
}
