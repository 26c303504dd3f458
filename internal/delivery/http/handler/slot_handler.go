package handler

import (
	"net/http"
	"time"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"
)

type SlotHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewSlotHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *SlotHandler {
	return &SlotHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// GenerateSlots responds with the slots created by this call only
func (h *SlotHandler) GenerateSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "doctorId", "doctor")
	if !ok {
		return
	}

	var req dto.GenerateSlotsRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	slots, err := h.availabilityUsecase.GenerateSlots(r.Context(), doctorID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Slots generated successfully", slots)
}

// ListOpenSlots serves ?date=YYYY-MM-DD or ?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *SlotHandler) ListOpenSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "doctorId", "doctor")
	if !ok {
		return
	}

	query := r.URL.Query()
	var (
		slots *dto.SlotListResponse
		err   error
	)

	switch {
	case query.Get("date") != "":
		date, parseErr := time.Parse(entity.DateLayout, query.Get("date"))
		if parseErr != nil {
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
			return
		}
		slots, err = h.availabilityUsecase.ListOpenSlots(r.Context(), doctorID, date)

	case query.Get("from") != "" && query.Get("to") != "":
		from, fromErr := time.Parse(entity.DateLayout, query.Get("from"))
		to, toErr := time.Parse(entity.DateLayout, query.Get("to"))
		if fromErr != nil || toErr != nil {
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
			return
		}
		slots, err = h.availabilityUsecase.ListOpenSlotsInRange(r.Context(), doctorID, from, to)

	default:
		response.BadRequest(w, "Either date or from and to are required")
		return
	}

	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Open slots retrieved successfully", slots)
}
