package handler

import (
	"net/http"
	"strings"
	"time"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
	"go-clinic-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// BookSlot books for the calling patient; staff callers name the patient in the body
func (h *AppointmentHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.BookSlotRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}
	if !h.resolvePatient(w, r, &req.PatientID) {
		return
	}

	appointment, err := h.appointmentUsecase.BookSlot(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) BookLegacy(w http.ResponseWriter, r *http.Request) {
	var req dto.LegacyBookingRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}
	if !h.resolvePatient(w, r, &req.PatientID) {
		return
	}

	appointment, err := h.appointmentUsecase.BookLegacy(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	appointment, ok := h.ownedAppointment(w, r, appointmentID)
	if !ok {
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) GetAppointmentByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(mux.Vars(r)["code"])
	if code == "" {
		response.BadRequest(w, "Appointment code is required")
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointmentByCode(r.Context(), code)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if !h.canSee(r, appointment) {
		response.Forbidden(w, "Appointment does not belong to you")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if !decodeBody(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.TransitionAppointment(r.Context(), appointmentID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	if _, ok := h.ownedAppointment(w, r, appointmentID); !ok {
		return
	}

	if err := h.appointmentUsecase.CancelAppointment(r.Context(), appointmentID); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment canceled successfully", nil)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), appointmentID); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "doctorId", "doctor")
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.ListUpcomingForDoctor(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	if middleware.IsPatient(r) {
		if callerID, _ := middleware.GetUserIDFromContext(r.Context()); callerID != patientID {
			response.Forbidden(w, "You can only view your own appointments")
			return
		}
	}

	appointments, err := h.appointmentUsecase.ListUpcomingForPatient(r.Context(), patientID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// ListAppointments serves ?status=&from=YYYY-MM-DD&to=YYYY-MM-DD&page=&limit=, both dates inclusive
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.AppointmentFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}

	if raw := query.Get("status"); raw != "" {
		status := entity.AppointmentStatus(strings.ToUpper(raw))
		filter.Status = &status
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(entity.DateLayout, raw)
		if err != nil {
			response.BadRequest(w, "Invalid from date, use YYYY-MM-DD")
			return
		}
		filter.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(entity.DateLayout, raw)
		if err != nil {
			response.BadRequest(w, "Invalid to date, use YYYY-MM-DD")
			return
		}
		endExclusive := to.AddDate(0, 0, 1)
		filter.To = &endExclusive
	}

	page, err := h.appointmentUsecase.ListAppointments(r.Context(), filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully",
		page.Appointments, response.NewMeta(page.Page, page.Limit, page.Total))
}

// resolvePatient forces the caller's own id for patients and requires one for everyone else
func (h *AppointmentHandler) resolvePatient(w http.ResponseWriter, r *http.Request, patientID *uuid.UUID) bool {
	if middleware.IsPatient(r) {
		callerID, _ := middleware.GetUserIDFromContext(r.Context())
		*patientID = callerID
		return true
	}
	if *patientID == uuid.Nil {
		response.ValidationError(w, map[string]string{"patient_id": "patient_id is required"})
		return false
	}
	return true
}

func (h *AppointmentHandler) ownedAppointment(w http.ResponseWriter, r *http.Request, appointmentID uuid.UUID) (*dto.AppointmentResponse, bool) {
	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), appointmentID)
	if err != nil {
		response.FromError(w, err)
		return nil, false
	}
	if !h.canSee(r, appointment) {
		response.Forbidden(w, "Appointment does not belong to you")
		return nil, false
	}
	return appointment, true
}

func (h *AppointmentHandler) canSee(r *http.Request, appointment *dto.AppointmentResponse) bool {
	if !middleware.IsPatient(r) {
		return true
	}
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	return appointment.PatientID == callerID
}
