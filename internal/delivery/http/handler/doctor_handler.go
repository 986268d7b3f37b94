package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/policy"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// List returns the public doctor catalog
// @Summary List doctors
// @Tags Doctors
// @Produce json
// @Param name query string false "Filter by name"
// @Param specialization query string false "Filter by specialization"
// @Router /doctors [get]
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	filter := &entity.DoctorFilter{
		Name:           r.URL.Query().Get("name"),
		Specialization: r.URL.Query().Get("specialization"),
	}

	doctors, total, err := h.doctorUsecase.List(r.Context(), filter, page, perPage)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Paginated(w, doctors, r.URL.Path, page, perPage, total)
}

// Get returns a single doctor profile
// @Summary Get a doctor
// @Tags Doctors
// @Produce json
// @Param id path int true "Doctor ID"
// @Router /doctors/{id} [get]
func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Data(w, http.StatusOK, doctor)
}

// Create adds a doctor profile (admin)
// @Summary Create a doctor
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Doctor Request"
// @Router /admin/doctors [post]
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrLinkedUserNotFound:
			response.FieldError(w, "user_id", "The linked user account does not exist")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to create doctors")
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Data(w, http.StatusCreated, doctor)
}

// Update edits a doctor profile (admin)
// @Summary Update a doctor
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Doctor ID"
// @Param request body dto.UpdateDoctorRequest true "Update Doctor Request"
// @Router /admin/doctors/{id} [put]
func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeDoctorError(w, err)
		return
	}

	response.Data(w, http.StatusOK, doctor)
}

// Delete removes a doctor profile (admin)
// @Summary Delete a doctor
// @Tags Doctors
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Success 204
// @Router /admin/doctors/{id} [delete]
func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	if err := h.doctorUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorHasBookings:
			response.Conflict(w, "Doctor has appointments and cannot be removed")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to delete doctors")
		default:
			response.InternalServerError(w, "Failed to delete doctor")
		}
		return
	}

	response.NoContent(w)
}

// GetMyProfile returns the profile linked to the logged-in doctor account
// @Summary Get my doctor profile
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Router /doctor/profile [get]
func (h *DoctorHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorUsecase.GetMyProfile(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrNoLinkedDoctorProfile:
			response.NotFound(w, "No doctor profile linked to this account")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Data(w, http.StatusOK, doctor)
}

// UpdateMyProfile edits the profile linked to the logged-in doctor account
// @Summary Update my doctor profile
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateDoctorRequest true "Update Doctor Request"
// @Router /doctor/profile [put]
func (h *DoctorHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateMyProfile(r.Context(), &req)
	if err != nil {
		h.writeDoctorError(w, err)
		return
	}

	response.Data(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) writeDoctorError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrNoLinkedDoctorProfile:
		response.NotFound(w, "No doctor profile linked to this account")
	case policy.ErrForbidden:
		response.Forbidden(w, "You don't have permission to update this doctor")
	default:
		response.InternalServerError(w, "Failed to update doctor")
	}
}
