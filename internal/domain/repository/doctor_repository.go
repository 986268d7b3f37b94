package repository

import (
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id int) (*entity.Doctor, error)
	// FindByIDForUpdate locks the doctor row for the duration of the
	// surrounding transaction. Used to serialize concurrent bookings.
	FindByIDForUpdate(db *gorm.DB, id int) (*entity.Doctor, error)
	FindAll(db *gorm.DB, filter *entity.DoctorFilter, limit, offset int) ([]entity.Doctor, int64, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Doctor, error)
	CountByUserID(db *gorm.DB, userID uuid.UUID) (int64, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Delete(db *gorm.DB, id int) (int64, error)
}
