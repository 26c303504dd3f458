package repository

import (
	"sort"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type weeklyAvailabilityRepository struct{}

func NewWeeklyAvailabilityRepository() domainRepo.WeeklyAvailabilityRepository {
	return &weeklyAvailabilityRepository{}
}

func (r *weeklyAvailabilityRepository) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, windows []entity.WeeklyAvailability) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.WeeklyAvailability{}).Error; err != nil {
		return err
	}
	if len(windows) == 0 {
		return nil
	}
	return db.Create(&windows).Error
}

func (r *weeklyAvailabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklyAvailability, error) {
	var windows []entity.WeeklyAvailability
	err := db.Where("doctor_id = ?", doctorID).Order("start_time ASC").Find(&windows).Error
	if err != nil {
		return nil, err
	}

	// Weekday is stored by name, so calendar order is applied here
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Weekday.Order() < windows[j].Weekday.Order()
	})
	return windows, nil
}

func (r *weeklyAvailabilityRepository) FindActiveByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday entity.Weekday) ([]entity.WeeklyAvailability, error) {
	var windows []entity.WeeklyAvailability
	err := db.Where("doctor_id = ? AND weekday = ? AND active = ?", doctorID, weekday, true).
		Order("start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}
