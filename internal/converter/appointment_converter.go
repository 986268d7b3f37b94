package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                  appointment.ID,
		PatientID:           appointment.PatientID,
		Status:              string(appointment.Status),
		AppointmentDatetime: appointment.AppointmentDatetime,
		PatientNotes:        appointment.PatientNotes,
		AdminNotes:          appointment.AdminNotes,
		CreatedAt:           appointment.CreatedAt,
		UpdatedAt:           appointment.UpdatedAt,
	}

	// Include relations if preloaded
	if appointment.Patient.ID != uuid.Nil {
		response.Patient = UserToResponse(&appointment.Patient)
	}
	if appointment.Doctor.ID != 0 {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}
	if appointment.Procedure.ID != 0 {
		response.Procedure = ProcedureToResponse(&appointment.Procedure)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
