package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// WindowRequestsToEntities parses request windows; active defaults to true
func WindowRequestsToEntities(requests []dto.WeeklyWindowRequest) ([]entity.WeeklyAvailability, error) {
	windows := make([]entity.WeeklyAvailability, len(requests))
	for i, req := range requests {
		start, err := entity.ParseClockTime(req.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := entity.ParseClockTime(req.EndTime)
		if err != nil {
			return nil, err
		}

		active := true
		if req.Active != nil {
			active = *req.Active
		}

		windows[i] = entity.WeeklyAvailability{
			Weekday:   entity.Weekday(req.Weekday),
			StartTime: start,
			EndTime:   end,
			Active:    active,
		}
	}
	return windows, nil
}

// AvailabilityToResponse converts a doctor's windows to AvailabilityResponse DTO
func AvailabilityToResponse(doctorID uuid.UUID, windows []entity.WeeklyAvailability) *dto.AvailabilityResponse {
	responses := make([]dto.WeeklyWindowResponse, len(windows))
	for i, window := range windows {
		responses[i] = dto.WeeklyWindowResponse{
			Weekday:   string(window.Weekday),
			StartTime: window.StartTime.String(),
			EndTime:   window.EndTime.String(),
			Active:    window.Active,
		}
	}

	return &dto.AvailabilityResponse{
		DoctorID: doctorID,
		Windows:  responses,
	}
}
