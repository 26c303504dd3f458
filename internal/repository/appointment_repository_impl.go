package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// Constraint names from the scheduling migration
const (
	constraintAppointmentCode       = "uq_appointments_code"
	constraintLegacyDoctorTimeIndex = "uq_appointments_legacy_doctor_time"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	err := db.Create(appointment).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case constraintAppointmentCode:
			return domainRepo.ErrDuplicateAppointmentCode
		case constraintLegacyDoctorTimeIndex:
			return domainRepo.ErrDoctorTimeTaken
		}
	}
	return err
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByCode(db *gorm.DB, code string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("code = ?", code).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindAll supports optional filters: status and scheduled_at range. Page is 1-based.
func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	limit, offset := 20, 0
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Page > 1 {
			offset = (filter.Page - 1) * limit
		}
	}

	filtered := func(query *gorm.DB) *gorm.DB {
		if filter == nil {
			return query
		}
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.From != nil {
			query = query.Where("scheduled_at >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("scheduled_at < ?", *filter.To)
		}
		return query
	}

	var total int64
	if err := db.Model(&entity.Appointment{}).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := db.Scopes(filtered).Order("scheduled_at DESC").Limit(limit).Offset(offset).Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

// ExistsForDoctorAt counts every appointment at that exact time, canceled ones included
func (r *appointmentRepository) ExistsForDoctorAt(db *gorm.DB, doctorID uuid.UUID, at time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND scheduled_at = ?", doctorID, at).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) FindUpcomingByDoctorID(db *gorm.DB, doctorID uuid.UUID, from time.Time) ([]entity.Appointment, error) {
	return r.findUpcoming(db.Where("doctor_id = ?", doctorID), from)
}

func (r *appointmentRepository) FindUpcomingByPatientID(db *gorm.DB, patientID uuid.UUID, from time.Time) ([]entity.Appointment, error) {
	return r.findUpcoming(db.Where("patient_id = ?", patientID), from)
}

func (r *appointmentRepository) findUpcoming(query *gorm.DB, from time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := query.
		Where("scheduled_at >= ? AND status NOT IN ?", from, []entity.AppointmentStatus{
			entity.AppointmentStatusCompleted,
			entity.AppointmentStatusCanceled,
		}).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus atomically moves the status ONLY if it still equals from.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
