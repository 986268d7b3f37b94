package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID            int    `json:"doctor_id" validate:"required,min=1"`
	ProcedureID         int    `json:"procedure_id" validate:"required,min=1"`
	AppointmentDatetime string `json:"appointment_datetime" validate:"required"`
	PatientNotes        string `json:"patient_notes" validate:"omitempty,max=2000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AdminUpdateAppointmentRequest struct {
	Status     string  `json:"status" validate:"omitempty"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                  int                `json:"id"`
	PatientID           uuid.UUID          `json:"patient_id"`
	Status              string             `json:"status"`
	AppointmentDatetime time.Time          `json:"appointment_datetime"`
	PatientNotes        string             `json:"patient_notes,omitempty"`
	AdminNotes          string             `json:"admin_notes,omitempty"`
	Patient             *UserResponse      `json:"patient,omitempty"`
	Doctor              *DoctorResponse    `json:"doctor,omitempty"`
	Procedure           *ProcedureResponse `json:"procedure,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

type CancelAppointmentResponse struct {
	ID      int    `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
