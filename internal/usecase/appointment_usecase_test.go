package usecase

import (
	"errors"
	"testing"

	"clinic-booking-api/internal/domain/entity"
)

func TestCanAssignStatus_AdminSetsAnyStatus(t *testing.T) {
	admin := &entity.User{Role: entity.RoleAdmin}

	// Admins may correct even a terminal status.
	if !canAssignStatus(admin, entity.StatusNoShow, entity.StatusCompleted) {
		t.Error("admin must be able to move no_show to completed")
	}
	if !canAssignStatus(admin, entity.StatusCompleted, entity.StatusCancelledByClinic) {
		t.Error("admin must be able to move completed to cancelled_by_clinic")
	}
	if !canAssignStatus(admin, entity.StatusCancelledByPatient, entity.StatusScheduled) {
		t.Error("admin must be able to reopen a cancelled appointment")
	}
}

func TestCanAssignStatus_NonAdminFollowsTransitionTable(t *testing.T) {
	doctor := &entity.User{Role: entity.RoleDoctor}

	if !canAssignStatus(doctor, entity.StatusScheduled, entity.StatusConfirmed) {
		t.Error("doctor must be able to confirm a scheduled appointment")
	}
	if canAssignStatus(doctor, entity.StatusNoShow, entity.StatusCompleted) {
		t.Error("doctor must not be able to leave a terminal status")
	}
	if canAssignStatus(doctor, entity.StatusCompleted, entity.StatusConfirmed) {
		t.Error("doctor must not be able to reopen a completed appointment")
	}
}

func TestCancelOutcome_RepeatCancelIsIdempotent(t *testing.T) {
	appointment := &entity.Appointment{ID: 9, Status: entity.StatusCancelledByPatient}

	result, err := cancelOutcome(appointment)
	if err != nil {
		t.Fatalf("repeat cancel: %v", err)
	}
	if result.ID != 9 || result.Status != string(entity.StatusCancelledByPatient) {
		t.Errorf("result = %+v, want id 9 with cancelled_by_patient status", result)
	}
	if result.Message == "" {
		t.Error("message is empty, want already-cancelled notice")
	}
}

func TestCancelOutcome_TerminalStatusRefuses(t *testing.T) {
	for _, status := range []entity.AppointmentStatus{entity.StatusCompleted, entity.StatusNoShow} {
		appointment := &entity.Appointment{ID: 9, Status: status}

		if _, err := cancelOutcome(appointment); !errors.Is(err, ErrNotCancellable) {
			t.Errorf("%s: got %v, want ErrNotCancellable", status, err)
		}
	}
}
