package repository

import (
	"errors"
	"time"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Preload("Procedure").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	query := db.Model(&entity.Appointment{}).Where("patient_id = ?", patientID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Doctor").Preload("Procedure").
		Limit(limit).Offset(offset).
		Order("appointment_datetime DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID int, limit, offset int) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	query := db.Model(&entity.Appointment{}).Where("doctor_id = ?", doctorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Patient").Preload("Procedure").
		Limit(limit).Offset(offset).
		Order("appointment_datetime ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	if err := db.Model(&entity.Appointment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Patient").Preload("Doctor").Preload("Procedure").
		Limit(limit).Offset(offset).
		Order("appointment_datetime DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

// CountConflicts mirrors entity.InConflictWindow in SQL: strict comparisons on
// both sides so exactly-2-hours-apart slots do not count, cancelled statuses
// excluded because they free the slot.
func (r *appointmentRepository) CountConflicts(db *gorm.DB, doctorID int, candidate time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Where("status NOT IN ?", []entity.AppointmentStatus{
			entity.StatusCancelledByPatient,
			entity.StatusCancelledByClinic,
		}).
		Where("appointment_datetime > ? AND appointment_datetime < ?",
			candidate.Add(-entity.ConflictWindow),
			candidate.Add(entity.ConflictWindow),
		).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor", "Procedure").Save(appointment).Error
}

// CancelByPatient cancels only while the status is still cancellable, in a
// single UPDATE, so two concurrent cancels cannot both report success.
func (r *appointmentRepository) CancelByPatient(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, []entity.AppointmentStatus{
			entity.StatusScheduled,
			entity.StatusConfirmed,
		}).
		Update("status", entity.StatusCancelledByPatient)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
