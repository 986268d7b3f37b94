package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	FirstName      string          `json:"first_name" validate:"required,min=2"`
	LastName       string          `json:"last_name" validate:"required,min=2"`
	Specialization string          `json:"specialization" validate:"required"`
	Biography      string          `json:"biography" validate:"omitempty"`
	PriceModifier  decimal.Decimal `json:"price_modifier" validate:"omitempty"`
	UserID         *uuid.UUID      `json:"user_id" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	FirstName      string           `json:"first_name" validate:"omitempty,min=2"`
	LastName       string           `json:"last_name" validate:"omitempty,min=2"`
	Specialization string           `json:"specialization" validate:"omitempty"`
	Biography      *string          `json:"biography" validate:"omitempty"`
	PriceModifier  *decimal.Decimal `json:"price_modifier" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID             int             `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	FullName       string          `json:"full_name"`
	Specialization string          `json:"specialization"`
	Biography      string          `json:"biography,omitempty"`
	PriceModifier  decimal.Decimal `json:"price_modifier"`
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	AvatarPath     string          `json:"avatar_path,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
