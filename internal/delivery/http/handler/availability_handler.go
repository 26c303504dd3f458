package handler

import (
	"net/http"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// SetWeeklyAvailability replaces every window of the doctor
func (h *AvailabilityHandler) SetWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "doctorId", "doctor")
	if !ok {
		return
	}

	var req dto.SetAvailabilityRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	availability, err := h.availabilityUsecase.SetWeeklyAvailability(r.Context(), doctorID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Weekly availability updated successfully", availability)
}

func (h *AvailabilityHandler) GetWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "doctorId", "doctor")
	if !ok {
		return
	}

	availability, err := h.availabilityUsecase.GetWeeklyAvailability(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Weekly availability retrieved successfully", availability)
}
