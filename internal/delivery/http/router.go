package http

import (
	"net/http"

	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	availabilityHandler *handler.AvailabilityHandler
	slotHandler         *handler.SlotHandler
	appointmentHandler  *handler.AppointmentHandler
	auditLogHandler     *handler.AuditLogHandler
	healthHandler       *handler.HealthHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
}

func NewRouter(
	availabilityHandler *handler.AvailabilityHandler,
	slotHandler *handler.SlotHandler,
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		availabilityHandler: availabilityHandler,
		slotHandler:         slotHandler,
		appointmentHandler:  appointmentHandler,
		auditLogHandler:     auditLogHandler,
		healthHandler:       healthHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(middleware.RequestID)
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Recover)
	r.router.Use(r.corsMiddleware.Handle)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health checks (public)
	api.HandleFunc("/health/live", r.healthHandler.Live).Methods(http.MethodGet)
	api.HandleFunc("/health/ready", r.healthHandler.Ready).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/doctors/{doctorId}/availability", r.availabilityHandler.SetWeeklyAvailability).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{doctorId}/slots/generate", r.slotHandler.GenerateSlots).Methods(http.MethodPost)
	admin.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Authenticated routes
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/doctors/{doctorId}/availability", r.availabilityHandler.GetWeeklyAvailability).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId}/slots", r.slotHandler.ListOpenSlots).Methods(http.MethodGet)

	protected.HandleFunc("/appointments", r.appointmentHandler.BookSlot).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/legacy", r.appointmentHandler.BookLegacy).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/code/{code}", r.appointmentHandler.GetAppointmentByCode).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{patientId}/appointments", r.appointmentHandler.ListForPatient).Methods(http.MethodGet)

	// Staff routes (admin or doctor)
	staff := api.NewRoute().Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)

	staff.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPut)
	staff.HandleFunc("/doctors/{doctorId}/appointments", r.appointmentHandler.ListForDoctor).Methods(http.MethodGet)

	return r.router
}
