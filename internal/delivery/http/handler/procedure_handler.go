package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/policy"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

	"github.com/gorilla/mux"
)

type ProcedureHandler struct {
	procedureUsecase usecase.ProcedureUsecase
	validator        *validator.CustomValidator
}

func NewProcedureHandler(procedureUsecase usecase.ProcedureUsecase, validator *validator.CustomValidator) *ProcedureHandler {
	return &ProcedureHandler{
		procedureUsecase: procedureUsecase,
		validator:        validator,
	}
}

// List returns the public procedure catalog
// @Summary List procedures
// @Tags Procedures
// @Produce json
// @Param name query string false "Filter by name"
// @Param category_id query int false "Filter by category"
// @Router /procedures [get]
func (h *ProcedureHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	filter := &entity.ProcedureFilter{
		Name: r.URL.Query().Get("name"),
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		if categoryID, err := strconv.Atoi(v); err == nil && categoryID > 0 {
			filter.CategoryID = categoryID
		}
	}

	procedures, total, err := h.procedureUsecase.List(r.Context(), filter, page, perPage)
	if err != nil {
		response.InternalServerError(w, "Failed to list procedures")
		return
	}

	response.Paginated(w, procedures, r.URL.Path, page, perPage, total)
}

// Get returns a single procedure
// @Summary Get a procedure
// @Tags Procedures
// @Produce json
// @Param id path int true "Procedure ID"
// @Router /procedures/{id} [get]
func (h *ProcedureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid procedure ID")
		return
	}

	procedure, err := h.procedureUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrProcedureNotFound:
			response.NotFound(w, "Procedure not found")
		default:
			response.InternalServerError(w, "Failed to get procedure")
		}
		return
	}

	response.Data(w, http.StatusOK, procedure)
}

// Create adds a procedure (admin)
// @Summary Create a procedure
// @Tags Procedures
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateProcedureRequest true "Create Procedure Request"
// @Router /admin/procedures [post]
func (h *ProcedureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	procedure, err := h.procedureUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCategoryNotFound:
			response.FieldError(w, "category_id", "The selected category does not exist")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to create procedures")
		default:
			response.InternalServerError(w, "Failed to create procedure")
		}
		return
	}

	response.Data(w, http.StatusCreated, procedure)
}

// Update edits a procedure (admin)
// @Summary Update a procedure
// @Tags Procedures
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Procedure ID"
// @Param request body dto.UpdateProcedureRequest true "Update Procedure Request"
// @Router /admin/procedures/{id} [put]
func (h *ProcedureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid procedure ID")
		return
	}

	var req dto.UpdateProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	procedure, err := h.procedureUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrProcedureNotFound:
			response.NotFound(w, "Procedure not found")
		case usecase.ErrCategoryNotFound:
			response.FieldError(w, "category_id", "The selected category does not exist")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to update procedures")
		default:
			response.InternalServerError(w, "Failed to update procedure")
		}
		return
	}

	response.Data(w, http.StatusOK, procedure)
}

// Delete removes a procedure (admin)
// @Summary Delete a procedure
// @Tags Procedures
// @Security BearerAuth
// @Param id path int true "Procedure ID"
// @Success 204
// @Router /admin/procedures/{id} [delete]
func (h *ProcedureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid procedure ID")
		return
	}

	if err := h.procedureUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrProcedureNotFound:
			response.NotFound(w, "Procedure not found")
		case usecase.ErrProcedureHasBookings:
			response.Conflict(w, "Procedure has appointments and cannot be removed")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to delete procedures")
		default:
			response.InternalServerError(w, "Failed to delete procedure")
		}
		return
	}

	response.NoContent(w)
}
