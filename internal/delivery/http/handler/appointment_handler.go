package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/policy"
	"clinic-booking-api/internal/service"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

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

// Create books a new appointment for the logged-in patient
// @Summary Book an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} dto.AppointmentResponse
// @Router /patient/appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDatetime:
			response.FieldError(w, "appointment_datetime", "The appointment datetime format is invalid")
		case service.ErrPastDatetime:
			response.FieldError(w, "appointment_datetime", "The appointment datetime must not be in the past")
		case service.ErrSlotConflict:
			response.FieldError(w, "appointment_datetime", "The selected time slot is not available for this doctor")
		case service.ErrUnknownDoctor:
			response.FieldError(w, "doctor_id", "The selected doctor does not exist")
		case usecase.ErrProcedureNotFound:
			response.FieldError(w, "procedure_id", "The selected procedure does not exist")
		case policy.ErrForbidden:
			response.Forbidden(w, "Only patients can book appointments")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Data(w, http.StatusCreated, appointment)
}

// CheckAvailability validates a slot without booking it
// @Summary Check slot availability for a doctor
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param doctor_id query int true "Doctor ID"
// @Param appointment_datetime query string true "Candidate datetime"
// @Success 200 {object} response.AvailabilityBody
// @Router /appointments/check-availability [get]
func (h *AppointmentHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseID(r.URL.Query().Get("doctor_id"))
	if !ok {
		response.FieldError(w, "doctor_id", "The doctor id field is required")
		return
	}
	datetime := r.URL.Query().Get("appointment_datetime")
	if datetime == "" {
		response.FieldError(w, "appointment_datetime", "The appointment datetime field is required")
		return
	}

	err := h.appointmentUsecase.CheckAvailability(r.Context(), doctorID, datetime)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDatetime:
			response.FieldError(w, "appointment_datetime", "The appointment datetime format is invalid")
		case service.ErrPastDatetime:
			response.Availability(w, http.StatusConflict, false, "The requested datetime is in the past")
		case service.ErrSlotConflict:
			response.Availability(w, http.StatusConflict, false, "The selected time slot is not available for this doctor")
		case service.ErrUnknownDoctor:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to check availability")
		}
		return
	}

	response.Availability(w, http.StatusOK, true, "")
}

// GetMyAppointments lists the logged-in patient's appointments
// @Summary List my appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Router /patient/appointments [get]
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	appointments, total, err := h.appointmentUsecase.GetMyAppointments(r.Context(), page, perPage)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Paginated(w, appointments, r.URL.Path, page, perPage, total)
}

// Get returns a single appointment visible to the caller
// @Summary Get an appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Router /patient/appointments/{id} [get]
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to view this appointment")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Data(w, http.StatusOK, appointment)
}

// Cancel cancels the patient's own appointment (idempotent)
// @Summary Cancel my appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Router /patient/appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	result, err := h.appointmentUsecase.CancelByPatient(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotCancellable:
			response.Conflict(w, "Appointment is no longer cancellable")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to cancel this appointment")
		case policy.ErrPastAppointment:
			response.Forbidden(w, "Past appointments cannot be cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Data(w, http.StatusOK, result)
}

// GetDoctorAppointments lists appointments for the logged-in doctor
// @Summary List appointments for my doctor profile
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Router /doctor/appointments [get]
func (h *AppointmentHandler) GetDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	appointments, total, err := h.appointmentUsecase.GetDoctorAppointments(r.Context(), page, perPage)
	if err != nil {
		switch err {
		case usecase.ErrNoLinkedDoctorProfile:
			response.NotFound(w, "No doctor profile linked to this account")
		default:
			response.InternalServerError(w, "Failed to list appointments")
		}
		return
	}

	response.Paginated(w, appointments, r.URL.Path, page, perPage, total)
}

// UpdateStatus moves an appointment through the doctor-assignable statuses
// @Summary Update appointment status as doctor
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Status Update Request"
// @Router /doctor/appointments/{id}/status [put]
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatusByDoctor(r.Context(), id, &req)
	if err != nil {
		h.writeStatusUpdateError(w, err)
		return
	}

	response.Data(w, http.StatusOK, appointment)
}

// ListAll lists every appointment (admin)
// @Summary List all appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Router /admin/appointments [get]
func (h *AppointmentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	appointments, total, err := h.appointmentUsecase.ListAll(r.Context(), page, perPage)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Paginated(w, appointments, r.URL.Path, page, perPage, total)
}

// UpdateByAdmin updates status and internal notes (admin)
// @Summary Update an appointment as admin
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body dto.AdminUpdateAppointmentRequest true "Admin Update Request"
// @Router /admin/appointments/{id} [put]
func (h *AppointmentHandler) UpdateByAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.AdminUpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateByAdmin(r.Context(), id, &req)
	if err != nil {
		h.writeStatusUpdateError(w, err)
		return
	}

	response.Data(w, http.StatusOK, appointment)
}

// Delete removes an appointment record entirely (admin)
// @Summary Delete an appointment
// @Tags Appointments
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 204
// @Router /admin/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.appointmentUsecase.DeleteByAdmin(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to delete this appointment")
		default:
			response.InternalServerError(w, "Failed to delete appointment")
		}
		return
	}

	response.NoContent(w)
}

func (h *AppointmentHandler) writeStatusUpdateError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrInvalidStatus:
		response.FieldError(w, "status", "The status is not a valid appointment status")
	case usecase.ErrStatusNotAssignable:
		response.FieldError(w, "status", "Doctors may only set confirmed, completed or rescheduled_by_doctor")
	case usecase.ErrInvalidTransition:
		response.Conflict(w, "Status transition not allowed from the current status")
	case policy.ErrForbidden:
		response.Forbidden(w, "You don't have permission to update this appointment")
	default:
		response.InternalServerError(w, "Failed to update appointment")
	}
}
