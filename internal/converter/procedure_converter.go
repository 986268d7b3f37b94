package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
)

// ProcedureToResponse converts a Procedure entity to ProcedureResponse DTO
func ProcedureToResponse(procedure *entity.Procedure) *dto.ProcedureResponse {
	if procedure == nil {
		return nil
	}

	response := &dto.ProcedureResponse{
		ID:           procedure.ID,
		Name:         procedure.Name,
		Description:  procedure.Description,
		BasePrice:    procedure.BasePrice,
		RecoveryInfo: procedure.RecoveryInfo,
		CreatedAt:    procedure.CreatedAt,
		UpdatedAt:    procedure.UpdatedAt,
	}

	// Include category info if preloaded
	if procedure.Category != nil {
		response.Category = ProcedureCategoryToResponse(procedure.Category)
	}

	return response
}

// ProceduresToResponses converts a slice of Procedure entities to slice of ProcedureResponse DTOs
func ProceduresToResponses(procedures []entity.Procedure) []dto.ProcedureResponse {
	responses := make([]dto.ProcedureResponse, len(procedures))
	for i, procedure := range procedures {
		resp := ProcedureToResponse(&procedure)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
