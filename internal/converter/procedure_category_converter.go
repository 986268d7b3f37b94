package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
)

// ProcedureCategoryToResponse converts a ProcedureCategory entity to ProcedureCategoryResponse DTO
func ProcedureCategoryToResponse(category *entity.ProcedureCategory) *dto.ProcedureCategoryResponse {
	if category == nil {
		return nil
	}

	response := &dto.ProcedureCategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}

	if len(category.Procedures) > 0 {
		response.Procedures = ProceduresToResponses(category.Procedures)
	}

	return response
}

// ProcedureCategoriesToResponses converts a slice of ProcedureCategory entities to slice of DTOs
func ProcedureCategoriesToResponses(categories []entity.ProcedureCategory) []dto.ProcedureCategoryResponse {
	responses := make([]dto.ProcedureCategoryResponse, len(categories))
	for i, category := range categories {
		resp := ProcedureCategoryToResponse(&category)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
