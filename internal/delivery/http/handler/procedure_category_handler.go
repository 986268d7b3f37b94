package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/policy"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

	"github.com/gorilla/mux"
)

type ProcedureCategoryHandler struct {
	categoryUsecase usecase.ProcedureCategoryUsecase
	validator       *validator.CustomValidator
}

func NewProcedureCategoryHandler(categoryUsecase usecase.ProcedureCategoryUsecase, validator *validator.CustomValidator) *ProcedureCategoryHandler {
	return &ProcedureCategoryHandler{
		categoryUsecase: categoryUsecase,
		validator:       validator,
	}
}

// List returns the public category catalog
// @Summary List procedure categories
// @Tags Categories
// @Produce json
// @Router /procedure-categories [get]
func (h *ProcedureCategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	categories, total, err := h.categoryUsecase.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalServerError(w, "Failed to list categories")
		return
	}

	response.Paginated(w, categories, r.URL.Path, page, perPage, total)
}

// GetBySlug returns a category with its procedures
// @Summary Get a category by slug
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Router /procedure-categories/{slug} [get]
func (h *ProcedureCategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if slug == "" {
		response.BadRequest(w, "Invalid category slug")
		return
	}

	category, err := h.categoryUsecase.GetBySlug(r.Context(), slug)
	if err != nil {
		switch err {
		case usecase.ErrCategoryNotFound:
			response.NotFound(w, "Category not found")
		default:
			response.InternalServerError(w, "Failed to get category")
		}
		return
	}

	response.Data(w, http.StatusOK, category)
}

// Create adds a category (admin)
// @Summary Create a procedure category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateProcedureCategoryRequest true "Create Category Request"
// @Router /admin/procedure-categories [post]
func (h *ProcedureCategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProcedureCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	category, err := h.categoryUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSlugExists:
			response.FieldError(w, "slug", "The slug has already been taken")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to create categories")
		default:
			response.InternalServerError(w, "Failed to create category")
		}
		return
	}

	response.Data(w, http.StatusCreated, category)
}

// Update edits a category (admin)
// @Summary Update a procedure category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body dto.UpdateProcedureCategoryRequest true "Update Category Request"
// @Router /admin/procedure-categories/{id} [put]
func (h *ProcedureCategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	var req dto.UpdateProcedureCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	category, err := h.categoryUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrCategoryNotFound:
			response.NotFound(w, "Category not found")
		case usecase.ErrSlugExists:
			response.FieldError(w, "slug", "The slug has already been taken")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to update categories")
		default:
			response.InternalServerError(w, "Failed to update category")
		}
		return
	}

	response.Data(w, http.StatusOK, category)
}

// Delete removes a category (admin)
// @Summary Delete a procedure category
// @Tags Categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Router /admin/procedure-categories/{id} [delete]
func (h *ProcedureCategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"])
	if !ok {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	if err := h.categoryUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrCategoryNotFound:
			response.NotFound(w, "Category not found")
		case usecase.ErrCategoryHasProcedures:
			response.Conflict(w, "Category still has procedures attached")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to delete categories")
		default:
			response.InternalServerError(w, "Failed to delete category")
		}
		return
	}

	response.NoContent(w)
}
