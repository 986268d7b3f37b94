package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Meta carries pagination state for collection endpoints.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// Links carries pagination navigation URLs. Prev/Next are null on the edges.
type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type paginatedBody struct {
	Data  interface{} `json:"data"`
	Links Links       `json:"links"`
	Meta  Meta        `json:"meta"`
}

type messageBody struct {
	Message string `json:"message"`
}

type validationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// AvailabilityBody is the check-availability wire shape.
type AvailabilityBody struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Data wraps a resource in the {"data": ...} envelope.
func Data(w http.ResponseWriter, statusCode int, data interface{}) {
	JSON(w, statusCode, map[string]interface{}{"data": data})
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Paginated wraps a collection in the {data, links, meta} envelope.
func Paginated(w http.ResponseWriter, data interface{}, basePath string, page, perPage int, total int64) {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	pageURL := func(p int) string {
		return fmt.Sprintf("%s?page=%d&per_page=%d", basePath, p, perPage)
	}

	links := Links{
		First: pageURL(1),
		Last:  pageURL(lastPage),
	}
	if page > 1 {
		prev := pageURL(page - 1)
		links.Prev = &prev
	}
	if page < lastPage {
		next := pageURL(page + 1)
		links.Next = &next
	}

	JSON(w, http.StatusOK, paginatedBody{
		Data:  data,
		Links: links,
		Meta: Meta{
			CurrentPage: page,
			PerPage:     perPage,
			Total:       total,
			LastPage:    lastPage,
		},
	})
}

// Availability writes the check-availability shape with the given status code.
func Availability(w http.ResponseWriter, statusCode int, available bool, message string) {
	JSON(w, statusCode, AvailabilityBody{Available: available, Message: message})
}

// Error writes a bare {"message": ...} body.
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, messageBody{Message: message})
}

// Message writes an informational {"message": ...} body with 200.
func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, messageBody{Message: message})
}

// ValidationError writes the 422 {message, errors} envelope.
func ValidationError(w http.ResponseWriter, errors map[string][]string) {
	JSON(w, http.StatusUnprocessableEntity, validationBody{
		Message: "The given data was invalid.",
		Errors:  errors,
	})
}

// FieldError writes a 422 envelope with a single field message.
func FieldError(w http.ResponseWriter, field, message string) {
	ValidationError(w, map[string][]string{field: {message}})
}

func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bad request"
	}
	Error(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthenticated"
	}
	Error(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message)
}

func Conflict(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Conflict"
	}
	Error(w, http.StatusConflict, message)
}

func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Too many requests")
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message)
}
