package service

import (
	"errors"
	"testing"
	"time"

	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fakeDoctorRepo struct {
	repository.DoctorRepository
	doctors map[int]*entity.Doctor
}

func (f *fakeDoctorRepo) FindByID(_ *gorm.DB, id int) (*entity.Doctor, error) {
	return f.doctors[id], nil
}

type fakeAppointmentRepo struct {
	repository.AppointmentRepository
	booked map[int][]time.Time
}

func (f *fakeAppointmentRepo) CountConflicts(_ *gorm.DB, doctorID int, candidate time.Time) (int64, error) {
	var count int64
	for _, at := range f.booked[doctorID] {
		if entity.InConflictWindow(at, candidate) {
			count++
		}
	}
	return count, nil
}

func newTestAvailability(doctors map[int]*entity.Doctor, booked map[int][]time.Time, now time.Time) *AvailabilityService {
	svc := NewAvailabilityService(nil, logrus.New(),
		&fakeDoctorRepo{doctors: doctors},
		&fakeAppointmentRepo{booked: booked},
	)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCheckSlot_UnknownDoctor(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestAvailability(map[int]*entity.Doctor{}, nil, now)

	err := svc.CheckSlot(42, now.Add(time.Hour))
	if !errors.Is(err, ErrUnknownDoctor) {
		t.Fatalf("got %v, want ErrUnknownDoctor", err)
	}
}

func TestCheckSlot_PastDatetime(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestAvailability(map[int]*entity.Doctor{1: {ID: 1}}, nil, now)

	if err := svc.CheckSlot(1, now.Add(-time.Minute)); !errors.Is(err, ErrPastDatetime) {
		t.Errorf("past slot: got %v, want ErrPastDatetime", err)
	}
	// Equality with now is evaluated inclusively at the boundary.
	if err := svc.CheckSlot(1, now); err != nil {
		t.Errorf("slot at exactly now must pass: %v", err)
	}
}

func TestCheckSlot_ConflictWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	booked := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestAvailability(
		map[int]*entity.Doctor{1: {ID: 1}, 2: {ID: 2}},
		map[int][]time.Time{1: {booked}},
		now,
	)

	// 11:30 is inside the window of the 10:00 appointment.
	if err := svc.CheckSlot(1, booked.Add(90*time.Minute)); !errors.Is(err, ErrSlotConflict) {
		t.Errorf("11:30: got %v, want ErrSlotConflict", err)
	}
	// 12:00 is exactly two hours away and therefore allowed.
	if err := svc.CheckSlot(1, booked.Add(2*time.Hour)); err != nil {
		t.Errorf("12:00 must be available: %v", err)
	}
	// The same slot for another doctor never conflicts.
	if err := svc.CheckSlot(2, booked.Add(90*time.Minute)); err != nil {
		t.Errorf("other doctor must be available: %v", err)
	}
}
