package handler

import (
	"encoding/json"
	"net/http"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/policy"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/response"
	"clinic-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

// List returns all accounts (admin)
// @Summary List users
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Router /admin/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	users, total, err := h.userUsecase.List(r.Context(), page, perPage)
	if err != nil {
		switch err {
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to list users")
		default:
			response.InternalServerError(w, "Failed to list users")
		}
		return
	}

	response.Paginated(w, users, r.URL.Path, page, perPage, total)
}

// Get returns a single account (admin)
// @Summary Get a user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.userUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to view users")
		default:
			response.InternalServerError(w, "Failed to get user")
		}
		return
	}

	response.Data(w, http.StatusOK, user)
}

// Create adds an account with an explicit role (admin)
// @Summary Create a user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Create User Request"
// @Router /admin/users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.FieldError(w, "email", "The email has already been taken")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to create users")
		default:
			response.InternalServerError(w, "Failed to create user")
		}
		return
	}

	response.Data(w, http.StatusCreated, user)
}

// Update edits an account (admin)
// @Summary Update a user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Update User Request"
// @Router /admin/users/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrEmailAlreadyExists:
			response.FieldError(w, "email", "The email has already been taken")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to update users")
		default:
			response.InternalServerError(w, "Failed to update user")
		}
		return
	}

	response.Data(w, http.StatusOK, user)
}

// Delete removes an account (admin, self-delete denied)
// @Summary Delete a user
// @Tags Users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.userUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case policy.ErrSelfDelete:
			response.Forbidden(w, "Deleting your own account is not allowed")
		case policy.ErrForbidden:
			response.Forbidden(w, "You don't have permission to delete users")
		default:
			response.InternalServerError(w, "Failed to delete user")
		}
		return
	}

	response.NoContent(w)
}
