package service

import (
	"errors"
	"time"

	"clinic-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrUnknownDoctor is returned when the doctor does not exist.
	ErrUnknownDoctor = errors.New("doctor not found")
	// ErrPastDatetime is returned when the candidate slot lies before now.
	ErrPastDatetime = errors.New("appointment datetime must not be in the past")
	// ErrSlotConflict is the structured conflict signal. It never carries the
	// conflicting appointment's identity.
	ErrSlotConflict = errors.New("the selected time slot is not available for this doctor")
)

// AvailabilityService decides whether a (doctor, datetime) slot is bookable.
// A slot conflicts when any non-cancelled appointment of the same doctor lies
// strictly inside the 2-hour window around the candidate.
type AvailabilityService struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	now             func() time.Time
}

func NewAvailabilityService(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
) *AvailabilityService {
	return &AvailabilityService{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		now:             time.Now,
	}
}

// CheckSlot validates a candidate slot against committed state. Callers that
// are about to write must re-check with CheckSlotTx inside their transaction.
func (s *AvailabilityService) CheckSlot(doctorID int, candidate time.Time) error {
	return s.CheckSlotTx(s.db, doctorID, candidate)
}

// CheckSlotTx runs the same validation against the given transaction handle.
// The booking usecase calls this after locking the doctor row so the window
// query cannot race with a concurrent insert.
func (s *AvailabilityService) CheckSlotTx(db *gorm.DB, doctorID int, candidate time.Time) error {
	// Equality with "now" is allowed, only strictly earlier slots are rejected.
	if candidate.Before(s.now()) {
		return ErrPastDatetime
	}

	doctor, err := s.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		s.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrUnknownDoctor
	}

	conflicts, err := s.appointmentRepo.CountConflicts(db, doctorID, candidate)
	if err != nil {
		s.log.Warnf("Failed to count conflicts for doctor %d: %+v", doctorID, err)
		return err
	}
	if conflicts > 0 {
		return ErrSlotConflict
	}

	return nil
}
