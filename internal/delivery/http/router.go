package http

import (
	"net/http"

	"clinic-booking-api/internal/delivery/http/handler"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/monitoring"
	"clinic-booking-api/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	doctorHandler       *handler.DoctorHandler
	procedureHandler    *handler.ProcedureHandler
	categoryHandler     *handler.ProcedureCategoryHandler
	appointmentHandler  *handler.AppointmentHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
	recoverMiddleware   *middleware.RecoverMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	doctorHandler *handler.DoctorHandler,
	procedureHandler *handler.ProcedureHandler,
	categoryHandler *handler.ProcedureCategoryHandler,
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	recoverMiddleware *middleware.RecoverMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		userHandler:         userHandler,
		doctorHandler:       doctorHandler,
		procedureHandler:    procedureHandler,
		categoryHandler:     categoryHandler,
		appointmentHandler:  appointmentHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
		recoverMiddleware:   recoverMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// JSON bodies for router-level errors too
	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "Resource not found")
	})
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.MethodNotAllowed(w)
	})

	// Metrics scrape endpoint, outside the versioned API
	r.router.Handle("/metrics", monitoring.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public catalog routes
	api.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/procedures", r.procedureHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/procedures/{id}", r.procedureHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/procedure-categories", r.categoryHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/procedure-categories/{slug}", r.categoryHandler.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/appointments/check-availability", r.appointmentHandler.CheckAvailability).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Patient routes (protected - patient only)
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}", r.appointmentHandler.Cancel).Methods(http.MethodDelete)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/appointments", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPut)
	doctor.HandleFunc("/profile", r.doctorHandler.GetMyProfile).Methods(http.MethodGet)
	doctor.HandleFunc("/profile", r.doctorHandler.UpdateMyProfile).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// User management (admin)
	admin.HandleFunc("/users", r.userHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users", r.userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.userHandler.Delete).Methods(http.MethodDelete)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Delete).Methods(http.MethodDelete)

	// Procedure management (admin)
	admin.HandleFunc("/procedures", r.procedureHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/procedures", r.procedureHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/procedures/{id}", r.procedureHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/procedures/{id}", r.procedureHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/procedures/{id}", r.procedureHandler.Delete).Methods(http.MethodDelete)

	// Category management (admin)
	admin.HandleFunc("/procedure-categories", r.categoryHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/procedure-categories", r.categoryHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/procedure-categories/{id}", r.categoryHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/procedure-categories/{id}", r.categoryHandler.Delete).Methods(http.MethodDelete)

	// Appointment management (admin)
	admin.HandleFunc("/appointments", r.appointmentHandler.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.UpdateByAdmin).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Global middleware, outermost first
	r.router.Use(r.recoverMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(middleware.MetricsMiddleware)
	r.router.Use(r.rateLimitMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
