package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// SlotToResponse converts a Slot entity to SlotResponse DTO
func SlotToResponse(slot *entity.Slot) *dto.SlotResponse {
	if slot == nil {
		return nil
	}

	return &dto.SlotResponse{
		ID:            slot.ID,
		DoctorID:      slot.DoctorID,
		SlotDate:      slot.DateKey(),
		StartTime:     slot.StartTime.String(),
		EndTime:       slot.EndTime.String(),
		Status:        string(slot.Status),
		AppointmentID: slot.AppointmentID,
		Version:       slot.Version,
		CreatedAt:     slot.CreatedAt,
	}
}

// SlotsToListResponse converts a slice of Slot entities to SlotListResponse DTO
func SlotsToListResponse(slots []entity.Slot) *dto.SlotListResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i := range slots {
		responses[i] = *SlotToResponse(&slots[i])
	}
	return &dto.SlotListResponse{
		Slots: responses,
		Total: len(responses),
	}
}
