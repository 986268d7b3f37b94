package repository

import (
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.Appointment, int64, error)
	FindByDoctorID(db *gorm.DB, doctorID int, limit, offset int) ([]entity.Appointment, int64, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Appointment, int64, error)
	// CountConflicts returns the number of non-cancelled appointments of the
	// doctor strictly inside the 2-hour window around the candidate datetime.
	CountConflicts(db *gorm.DB, doctorID int, candidate time.Time) (int64, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// CancelByPatient atomically marks the appointment cancelled_by_patient
	// only while its status is still cancellable. Returns affected rows:
	// 1 = cancelled, 0 = status changed concurrently.
	CancelByPatient(db *gorm.DB, id int) (int64, error)
	Delete(db *gorm.DB, id int) (int64, error)
}

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindAll(db *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error)
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
}
