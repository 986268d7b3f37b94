package entity

import (
	"testing"
	"time"
)

func TestAppointmentStatus_Valid(t *testing.T) {
	valid := []AppointmentStatus{
		StatusScheduled, StatusConfirmed, StatusRescheduledByDoctor,
		StatusCompleted, StatusCancelledByPatient, StatusCancelledByClinic, StatusNoShow,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []AppointmentStatus{"", "booked", "cancelled", "done"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestAppointmentStatus_TerminalStatesRejectTransitions(t *testing.T) {
	terminal := []AppointmentStatus{
		StatusCompleted, StatusCancelledByPatient, StatusCancelledByClinic, StatusNoShow,
	}
	all := []AppointmentStatus{
		StatusScheduled, StatusConfirmed, StatusRescheduledByDoctor,
		StatusCompleted, StatusCancelledByPatient, StatusCancelledByClinic, StatusNoShow,
	}
	for _, from := range terminal {
		if !from.IsTerminal() {
			t.Errorf("expected %q to be terminal", from)
		}
		for _, to := range all {
			if from.CanTransitionTo(to) {
				t.Errorf("terminal status %q must not transition to %q", from, to)
			}
		}
	}
}

func TestAppointmentStatus_ActiveTransitions(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelledByPatient, true},
		{StatusScheduled, StatusNoShow, true},
		{StatusScheduled, StatusScheduled, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusRescheduledByDoctor, StatusConfirmed, true},
		{StatusRescheduledByDoctor, StatusCancelledByClinic, true},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestAppointmentStatus_DoctorAssignable(t *testing.T) {
	allowed := []AppointmentStatus{StatusConfirmed, StatusCompleted, StatusRescheduledByDoctor}
	for _, s := range allowed {
		if !s.DoctorAssignable() {
			t.Errorf("expected doctor to be allowed to set %q", s)
		}
	}
	denied := []AppointmentStatus{
		StatusScheduled, StatusCancelledByPatient, StatusCancelledByClinic, StatusNoShow,
	}
	for _, s := range denied {
		if s.DoctorAssignable() {
			t.Errorf("expected doctor to be denied setting %q", s)
		}
	}
}

func TestInConflictWindow_Boundaries(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		candidate time.Time
		want      bool
	}{
		{"same instant", base, true},
		{"90 minutes after", base.Add(90 * time.Minute), true},
		{"119 minutes after", base.Add(119 * time.Minute), true},
		{"exactly 2h after is allowed", base.Add(2 * time.Hour), false},
		{"121 minutes after", base.Add(121 * time.Minute), false},
		{"119 minutes before", base.Add(-119 * time.Minute), true},
		{"exactly 2h before is allowed", base.Add(-2 * time.Hour), false},
		{"3h before", base.Add(-3 * time.Hour), false},
	}
	for _, c := range cases {
		if got := InConflictWindow(base, c.candidate); got != c.want {
			t.Errorf("%s: InConflictWindow = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestInConflictWindow_SameDoctorSameDay(t *testing.T) {
	// Existing appointment at 2025-06-01T10:00.
	existing := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	if !InConflictWindow(existing, time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC)) {
		t.Error("11:30 should conflict with a 10:00 appointment")
	}
	if InConflictWindow(existing, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Error("12:00 should not conflict with a 10:00 appointment")
	}
}
