package policy

import (
	"errors"
	"time"

	"clinic-booking-api/internal/domain/entity"
)

// Action is a capability in the {view, create, update, delete} set.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var (
	// ErrForbidden is the generic denial signal. Gate denials short-circuit
	// the calling usecase before any side effect.
	ErrForbidden = errors.New("forbidden")
	// ErrSelfDelete is returned when a user tries to delete their own account.
	ErrSelfDelete = errors.New("deleting own account is not allowed")
	// ErrPastAppointment is returned when a non-admin tries to delete or
	// cancel an appointment whose datetime already passed.
	ErrPastAppointment = errors.New("appointment is in the past")
)

// Gate decides per-role, per-entity capabilities. The clock is injectable for
// the past-appointment rule.
type Gate struct {
	now func() time.Time
}

func NewGate() *Gate {
	return &Gate{now: time.Now}
}

// NewGateWithClock is used by tests to pin the current moment.
func NewGateWithClock(now func() time.Time) *Gate {
	return &Gate{now: now}
}

// Appointment checks appointment capabilities:
// view/delete for the owning patient or admin, delete additionally blocked for
// non-admins once the datetime passed, create for patients only, update for
// admin or the doctor linked to the appointment.
func (g *Gate) Appointment(actor *entity.User, action Action, appointment *entity.Appointment) error {
	if actor == nil {
		return ErrForbidden
	}

	switch action {
	case ActionCreate:
		if actor.Role == entity.RolePatient {
			return nil
		}
		return ErrForbidden

	case ActionView:
		if actor.Role == entity.RoleAdmin || appointment.PatientID == actor.ID {
			return nil
		}
		return ErrForbidden

	case ActionUpdate:
		switch actor.Role {
		case entity.RoleAdmin:
			return nil
		case entity.RoleDoctor:
			// Doctors touch only their own appointments; the status subset
			// is enforced by the lifecycle manager.
			if appointment.Doctor.IsLinkedTo(actor.ID) {
				return nil
			}
		}
		return ErrForbidden

	case ActionDelete:
		if actor.Role == entity.RoleAdmin {
			return nil
		}
		if appointment.PatientID != actor.ID {
			return ErrForbidden
		}
		if appointment.IsPast(g.now()) {
			return ErrPastAppointment
		}
		return nil
	}

	return ErrForbidden
}

// Doctor checks doctor-profile capabilities: view/create/delete admin-only,
// update for admin or the doctor editing the profile linked to their account.
func (g *Gate) Doctor(actor *entity.User, action Action, doctor *entity.Doctor) error {
	if actor == nil {
		return ErrForbidden
	}
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if action == ActionUpdate && actor.Role == entity.RoleDoctor && doctor != nil && doctor.IsLinkedTo(actor.ID) {
		return nil
	}
	return ErrForbidden
}

// Procedure checks procedure and category capabilities: reads are open to any
// authenticated role, writes are admin-only.
func (g *Gate) Procedure(actor *entity.User, action Action) error {
	if actor == nil {
		return ErrForbidden
	}
	if action == ActionView {
		return nil
	}
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	return ErrForbidden
}

// User checks account capabilities: everything is admin-only, and deleting
// oneself is denied regardless of role.
func (g *Gate) User(actor *entity.User, action Action, target *entity.User) error {
	if actor == nil {
		return ErrForbidden
	}
	if action == ActionDelete && target != nil && target.ID == actor.ID {
		return ErrSelfDelete
	}
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	return ErrForbidden
}
