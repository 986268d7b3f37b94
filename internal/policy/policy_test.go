package policy

import (
	"errors"
	"testing"
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testGate() *Gate {
	return NewGateWithClock(func() time.Time { return testNow })
}

func user(role entity.Role) *entity.User {
	return &entity.User{ID: uuid.New(), Role: role}
}

func TestGate_AppointmentCreate(t *testing.T) {
	g := testGate()

	if err := g.Appointment(user(entity.RolePatient), ActionCreate, nil); err != nil {
		t.Errorf("patient must be allowed to create: %v", err)
	}
	if err := g.Appointment(user(entity.RoleAdmin), ActionCreate, nil); err == nil {
		t.Error("admin must not create appointments")
	}
	if err := g.Appointment(user(entity.RoleDoctor), ActionCreate, nil); err == nil {
		t.Error("doctor must not create appointments")
	}
	if err := g.Appointment(nil, ActionCreate, nil); err == nil {
		t.Error("anonymous actor must be denied")
	}
}

func TestGate_AppointmentViewOwnership(t *testing.T) {
	g := testGate()
	owner := user(entity.RolePatient)
	other := user(entity.RolePatient)
	appt := &entity.Appointment{PatientID: owner.ID}

	if err := g.Appointment(owner, ActionView, appt); err != nil {
		t.Errorf("owner must view own appointment: %v", err)
	}
	if err := g.Appointment(other, ActionView, appt); !errors.Is(err, ErrForbidden) {
		t.Errorf("another patient must get ErrForbidden, got %v", err)
	}
	if err := g.Appointment(user(entity.RoleAdmin), ActionView, appt); err != nil {
		t.Errorf("admin must view any appointment: %v", err)
	}
}

func TestGate_AppointmentDeletePastRule(t *testing.T) {
	g := testGate()
	owner := user(entity.RolePatient)

	future := &entity.Appointment{PatientID: owner.ID, AppointmentDatetime: testNow.Add(24 * time.Hour)}
	if err := g.Appointment(owner, ActionDelete, future); err != nil {
		t.Errorf("owner must delete future appointment: %v", err)
	}

	past := &entity.Appointment{PatientID: owner.ID, AppointmentDatetime: testNow.Add(-time.Hour)}
	if err := g.Appointment(owner, ActionDelete, past); !errors.Is(err, ErrPastAppointment) {
		t.Errorf("owner deleting past appointment: got %v, want ErrPastAppointment", err)
	}
	if err := g.Appointment(user(entity.RoleAdmin), ActionDelete, past); err != nil {
		t.Errorf("admin must delete past appointments: %v", err)
	}
}

func TestGate_AppointmentUpdate(t *testing.T) {
	g := testGate()
	doctorUser := user(entity.RoleDoctor)
	otherDoctor := user(entity.RoleDoctor)

	appt := &entity.Appointment{
		PatientID: uuid.New(),
		Doctor:    entity.Doctor{ID: 7, UserID: &doctorUser.ID},
	}

	if err := g.Appointment(user(entity.RoleAdmin), ActionUpdate, appt); err != nil {
		t.Errorf("admin must update: %v", err)
	}
	if err := g.Appointment(doctorUser, ActionUpdate, appt); err != nil {
		t.Errorf("linked doctor must update own appointment: %v", err)
	}
	if err := g.Appointment(otherDoctor, ActionUpdate, appt); !errors.Is(err, ErrForbidden) {
		t.Errorf("unlinked doctor must be denied, got %v", err)
	}
	if err := g.Appointment(user(entity.RolePatient), ActionUpdate, appt); !errors.Is(err, ErrForbidden) {
		t.Errorf("patient must be denied update, got %v", err)
	}
}

func TestGate_Doctor(t *testing.T) {
	g := testGate()
	doctorUser := user(entity.RoleDoctor)
	profile := &entity.Doctor{ID: 3, UserID: &doctorUser.ID}

	for _, action := range []Action{ActionView, ActionCreate, ActionDelete} {
		if err := g.Doctor(user(entity.RoleAdmin), action, profile); err != nil {
			t.Errorf("admin %s: %v", action, err)
		}
		if err := g.Doctor(user(entity.RolePatient), action, profile); err == nil {
			t.Errorf("patient must be denied doctor %s", action)
		}
		if err := g.Doctor(doctorUser, action, profile); err == nil {
			t.Errorf("doctor must be denied doctor %s", action)
		}
	}

	if err := g.Doctor(doctorUser, ActionUpdate, profile); err != nil {
		t.Errorf("doctor must update own linked profile: %v", err)
	}
	if err := g.Doctor(user(entity.RoleDoctor), ActionUpdate, profile); err == nil {
		t.Error("doctor must not update another doctor's profile")
	}
}

func TestGate_Procedure(t *testing.T) {
	g := testGate()

	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleDoctor, entity.RolePatient} {
		if err := g.Procedure(user(role), ActionView); err != nil {
			t.Errorf("%s must read procedures: %v", role, err)
		}
	}
	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		if err := g.Procedure(user(entity.RoleAdmin), action); err != nil {
			t.Errorf("admin %s: %v", action, err)
		}
		if err := g.Procedure(user(entity.RolePatient), action); err == nil {
			t.Errorf("patient must be denied procedure %s", action)
		}
	}
}

func TestGate_UserSelfDelete(t *testing.T) {
	g := testGate()
	admin := user(entity.RoleAdmin)

	if err := g.User(admin, ActionDelete, admin); !errors.Is(err, ErrSelfDelete) {
		t.Errorf("admin self-delete: got %v, want ErrSelfDelete", err)
	}
	if err := g.User(admin, ActionDelete, user(entity.RolePatient)); err != nil {
		t.Errorf("admin must delete other users: %v", err)
	}
	if err := g.User(user(entity.RolePatient), ActionView, user(entity.RolePatient)); err == nil {
		t.Error("patient must be denied user management")
	}
}
