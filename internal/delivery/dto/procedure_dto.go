package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateProcedureRequest struct {
	Name         string          `json:"name" validate:"required,min=2"`
	Description  string          `json:"description" validate:"omitempty"`
	BasePrice    decimal.Decimal `json:"base_price" validate:"required"`
	CategoryID   *int            `json:"category_id" validate:"omitempty,min=1"`
	RecoveryInfo string          `json:"recovery_info" validate:"omitempty"`
}

type UpdateProcedureRequest struct {
	Name         string           `json:"name" validate:"omitempty,min=2"`
	Description  *string          `json:"description" validate:"omitempty"`
	BasePrice    *decimal.Decimal `json:"base_price" validate:"omitempty"`
	CategoryID   *int             `json:"category_id" validate:"omitempty,min=1"`
	RecoveryInfo *string          `json:"recovery_info" validate:"omitempty"`
}

type CreateProcedureCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2"`
	Slug string `json:"slug" validate:"required,min=2"`
}

type UpdateProcedureCategoryRequest struct {
	Name string `json:"name" validate:"omitempty,min=2"`
	Slug string `json:"slug" validate:"omitempty,min=2"`
}

// Response DTOs

type ProcedureResponse struct {
	ID           int                        `json:"id"`
	Name         string                     `json:"name"`
	Description  string                     `json:"description,omitempty"`
	BasePrice    decimal.Decimal            `json:"base_price"`
	RecoveryInfo string                     `json:"recovery_info,omitempty"`
	Category     *ProcedureCategoryResponse `json:"category,omitempty"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

type ProcedureCategoryResponse struct {
	ID         int                 `json:"id"`
	Name       string              `json:"name"`
	Slug       string              `json:"slug"`
	Procedures []ProcedureResponse `json:"procedures,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
