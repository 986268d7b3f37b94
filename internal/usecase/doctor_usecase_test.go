package usecase

import (
	"testing"

	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fakeDoctorRepo struct {
	repository.DoctorRepository
	profileCount int64
}

func (f *fakeDoctorRepo) CountByUserID(_ *gorm.DB, _ uuid.UUID) (int64, error) {
	return f.profileCount, nil
}

type fakeUserRepo struct {
	repository.UserRepository
	updatedID   uuid.UUID
	updatedRole entity.Role
	updateCalls int
}

func (f *fakeUserRepo) UpdateRole(_ *gorm.DB, id uuid.UUID, role entity.Role) error {
	f.updatedID = id
	f.updatedRole = role
	f.updateCalls++
	return nil
}

func newTestDoctorUsecase(profileCount int64, users *fakeUserRepo) *doctorUsecase {
	return &doctorUsecase{
		log:        logrus.New(),
		doctorRepo: &fakeDoctorRepo{profileCount: profileCount},
		userRepo:   users,
	}
}

func TestDemoteIfLastProfile_LastProfileDemotesToPatient(t *testing.T) {
	users := &fakeUserRepo{}
	u := newTestDoctorUsecase(0, users)
	userID := uuid.New()

	if err := u.demoteIfLastProfile(nil, userID); err != nil {
		t.Fatalf("demote: %v", err)
	}
	if users.updateCalls != 1 {
		t.Fatalf("UpdateRole calls = %d, want 1", users.updateCalls)
	}
	if users.updatedID != userID || users.updatedRole != entity.RolePatient {
		t.Errorf("UpdateRole(%s, %s), want (%s, patient)", users.updatedID, users.updatedRole, userID)
	}
}

func TestDemoteIfLastProfile_RemainingProfileKeepsRole(t *testing.T) {
	users := &fakeUserRepo{}
	u := newTestDoctorUsecase(1, users)

	if err := u.demoteIfLastProfile(nil, uuid.New()); err != nil {
		t.Fatalf("demote: %v", err)
	}
	if users.updateCalls != 0 {
		t.Errorf("UpdateRole calls = %d, want 0 while another profile remains", users.updateCalls)
	}
}
