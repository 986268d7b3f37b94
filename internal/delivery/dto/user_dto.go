package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Role     string `json:"role" validate:"required,oneof=admin doctor patient"`
}

type UpdateUserRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	FullName string `json:"full_name" validate:"omitempty,min=2"`
	Role     string `json:"role" validate:"omitempty,oneof=admin doctor patient"`
	IsActive *bool  `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	AvatarPath string    `json:"avatar_path,omitempty"`
	IsActive   *bool     `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
