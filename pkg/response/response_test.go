package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPaginated_MetaAndLinks(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []int{1, 2, 3}, "/api/v1/doctors", 2, 3, 8)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Data  []int `json:"data"`
		Links Links `json:"links"`
		Meta  Meta  `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body.Meta.CurrentPage != 2 || body.Meta.PerPage != 3 || body.Meta.Total != 8 {
		t.Errorf("unexpected meta: %+v", body.Meta)
	}
	if body.Meta.LastPage != 3 {
		t.Errorf("last_page = %d, want 3", body.Meta.LastPage)
	}
	if body.Links.Prev == nil || *body.Links.Prev != "/api/v1/doctors?page=1&per_page=3" {
		t.Errorf("unexpected prev link: %v", body.Links.Prev)
	}
	if body.Links.Next == nil || *body.Links.Next != "/api/v1/doctors?page=3&per_page=3" {
		t.Errorf("unexpected next link: %v", body.Links.Next)
	}
}

func TestPaginated_EdgePagesHaveNullLinks(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []int{}, "/api/v1/procedures", 1, 10, 0)

	var body struct {
		Links Links `json:"links"`
		Meta  Meta  `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Links.Prev != nil || body.Links.Next != nil {
		t.Errorf("expected null prev/next on a single page, got %v / %v", body.Links.Prev, body.Links.Next)
	}
	if body.Meta.LastPage != 1 {
		t.Errorf("last_page = %d, want 1 for empty collection", body.Meta.LastPage)
	}
}

func TestValidationError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	FieldError(rec, "appointment_datetime", "The appointment_datetime must not be in the past")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Message == "" {
		t.Error("expected top-level message")
	}
	if len(body.Errors["appointment_datetime"]) != 1 {
		t.Errorf("expected one message for appointment_datetime, got %v", body.Errors)
	}
}

func TestData_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Data(rec, http.StatusCreated, map[string]int{"id": 1})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var body map[string]map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["data"]["id"] != 1 {
		t.Errorf("unexpected body: %v", body)
	}
}
