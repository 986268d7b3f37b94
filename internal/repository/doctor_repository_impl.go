package repository

import (
	"errors"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id int) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("User").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// FindByIDForUpdate takes a SELECT ... FOR UPDATE lock on the doctor row.
// Concurrent booking transactions for the same doctor serialize here, so the
// conflict re-check inside the transaction sees every committed booking.
func (r *doctorRepository) FindByIDForUpdate(db *gorm.DB, id int) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB, filter *entity.DoctorFilter, limit, offset int) ([]entity.Doctor, int64, error) {
	var doctors []entity.Doctor
	var total int64

	query := db.Model(&entity.Doctor{})
	if filter != nil {
		if filter.Name != "" {
			query = query.Where("first_name ILIKE ? OR last_name ILIKE ?", "%"+filter.Name+"%", "%"+filter.Name+"%")
		}
		if filter.Specialization != "" {
			query = query.Where("specialization ILIKE ?", "%"+filter.Specialization+"%")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("last_name ASC, first_name ASC").Find(&doctors).Error
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (r *doctorRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Where("user_id = ?", userID).Order("id ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) CountByUserID(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Doctor{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("User", "Appointments").Save(doctor).Error
}

func (r *doctorRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, result.Error
}
