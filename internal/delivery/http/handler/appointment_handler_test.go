package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/service"
	"clinic-booking-api/internal/usecase"
	"clinic-booking-api/pkg/validator"

	"github.com/gorilla/mux"
)

// stubAppointmentUsecase lets each test pin the outcome of the calls it cares about.
type stubAppointmentUsecase struct {
	usecase.AppointmentUsecase

	createResp       *dto.AppointmentResponse
	createErr        error
	availabilityErr  error
	cancelResp       *dto.CancelAppointmentResponse
	cancelErr        error
	lastCancelledID  int
	lastAvailability struct {
		doctorID int
		datetime string
	}
}

func (s *stubAppointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubAppointmentUsecase) CheckAvailability(ctx context.Context, doctorID int, datetime string) error {
	s.lastAvailability.doctorID = doctorID
	s.lastAvailability.datetime = datetime
	return s.availabilityErr
}

func (s *stubAppointmentUsecase) CancelByPatient(ctx context.Context, id int) (*dto.CancelAppointmentResponse, error) {
	s.lastCancelledID = id
	return s.cancelResp, s.cancelErr
}

func newTestHandler(stub *stubAppointmentUsecase) *AppointmentHandler {
	return NewAppointmentHandler(stub, validator.NewValidator())
}

func TestCheckAvailabilityAvailable(t *testing.T) {
	stub := &stubAppointmentUsecase{}
	h := newTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/check-availability?doctor_id=3&appointment_datetime=2030-06-01T10:00:00Z", nil)
	rec := httptest.NewRecorder()
	h.CheckAvailability(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Available {
		t.Error("available = false, want true")
	}
	if stub.lastAvailability.doctorID != 3 {
		t.Errorf("doctorID = %d, want 3", stub.lastAvailability.doctorID)
	}
	if stub.lastAvailability.datetime != "2030-06-01T10:00:00Z" {
		t.Errorf("datetime = %q, want the appointment_datetime query value", stub.lastAvailability.datetime)
	}
}

func TestCheckAvailabilityConflict(t *testing.T) {
	stub := &stubAppointmentUsecase{availabilityErr: service.ErrSlotConflict}
	h := newTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/check-availability?doctor_id=3&appointment_datetime=2030-06-01T11:30:00Z", nil)
	rec := httptest.NewRecorder()
	h.CheckAvailability(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var body struct {
		Available bool   `json:"available"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Available {
		t.Error("available = true, want false")
	}
	if body.Message == "" {
		t.Error("message is empty, want explanation")
	}
}

func TestCheckAvailabilityMissingParams(t *testing.T) {
	h := newTestHandler(&stubAppointmentUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/check-availability?appointment_datetime=2030-06-01T10:00:00Z", nil)
	rec := httptest.NewRecorder()
	h.CheckAvailability(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/appointments/check-availability?doctor_id=3", nil)
	rec = httptest.NewRecorder()
	h.CheckAvailability(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := resp.Errors["appointment_datetime"]; !ok {
		t.Errorf("errors = %v, want key appointment_datetime", resp.Errors)
	}
}

func TestCreateAppointmentCreated(t *testing.T) {
	stub := &stubAppointmentUsecase{
		createResp: &dto.AppointmentResponse{ID: 7, Status: "scheduled"},
	}
	h := newTestHandler(stub)

	body := `{"doctor_id":3,"procedure_id":2,"appointment_datetime":"2030-06-01T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patient/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Data dto.AppointmentResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Data.ID != 7 || resp.Data.Status != "scheduled" {
		t.Errorf("data = %+v, want ID 7 status scheduled", resp.Data)
	}
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	stub := &stubAppointmentUsecase{createErr: service.ErrSlotConflict}
	h := newTestHandler(stub)

	body := `{"doctor_id":3,"procedure_id":2,"appointment_datetime":"2030-06-01T11:30:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patient/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	var resp struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := resp.Errors["appointment_datetime"]; !ok {
		t.Errorf("errors = %v, want key appointment_datetime", resp.Errors)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	h := newTestHandler(&stubAppointmentUsecase{})

	// Missing doctor_id and appointment_datetime
	body := `{"procedure_id":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patient/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, field := range []string{"doctor_id", "appointment_datetime"} {
		if _, ok := resp.Errors[field]; !ok {
			t.Errorf("errors missing key %q: %v", field, resp.Errors)
		}
	}
}

func TestCancelIdempotentRepeat(t *testing.T) {
	stub := &stubAppointmentUsecase{
		cancelResp: &dto.CancelAppointmentResponse{
			ID:      5,
			Status:  "cancelled_by_patient",
			Message: "Appointment was already cancelled",
		},
	}
	h := newTestHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/patient/appointments/5", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "5"})
	rec := httptest.NewRecorder()
	h.Cancel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if stub.lastCancelledID != 5 {
		t.Errorf("cancelled ID = %d, want 5", stub.lastCancelledID)
	}

	var resp struct {
		Data dto.CancelAppointmentResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Data.Status != "cancelled_by_patient" {
		t.Errorf("status = %q, want cancelled_by_patient", resp.Data.Status)
	}
}

func TestCancelNotFound(t *testing.T) {
	stub := &stubAppointmentUsecase{cancelErr: usecase.ErrAppointmentNotFound}
	h := newTestHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/patient/appointments/99", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "99"})
	rec := httptest.NewRecorder()
	h.Cancel(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
