package repository

import (
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.User, int64, error)
	Update(db *gorm.DB, user *entity.User) error
	UpdateRole(db *gorm.DB, id uuid.UUID, role entity.Role) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
