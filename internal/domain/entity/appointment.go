package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled           AppointmentStatus = "scheduled"
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusRescheduledByDoctor AppointmentStatus = "rescheduled_by_doctor"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByPatient  AppointmentStatus = "cancelled_by_patient"
	StatusCancelledByClinic   AppointmentStatus = "cancelled_by_clinic"
	StatusNoShow              AppointmentStatus = "no_show"
)

// ConflictWindow is the minimum spacing between two appointments of the same
// doctor. A candidate slot conflicts with any non-cancelled appointment whose
// datetime lies strictly inside the symmetric window; exactly-2-hours-apart
// slots are allowed.
const ConflictWindow = 2 * time.Hour

// transitions lists the allowed next statuses per current status. Terminal
// statuses have no entries.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {
		StatusConfirmed, StatusRescheduledByDoctor, StatusCompleted,
		StatusCancelledByPatient, StatusCancelledByClinic, StatusNoShow,
	},
	StatusConfirmed: {
		StatusRescheduledByDoctor, StatusCompleted,
		StatusCancelledByPatient, StatusCancelledByClinic, StatusNoShow,
	},
	StatusRescheduledByDoctor: {
		StatusConfirmed, StatusCompleted,
		StatusCancelledByPatient, StatusCancelledByClinic, StatusNoShow,
	},
}

// Valid reports whether s is one of the defined statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusRescheduledByDoctor, StatusCompleted,
		StatusCancelledByPatient, StatusCancelledByClinic, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// IsCancelled reports whether s belongs to the cancelled family. Cancelled
// appointments do not block the doctor's slot.
func (s AppointmentStatus) IsCancelled() bool {
	return s == StatusCancelledByPatient || s == StatusCancelledByClinic
}

// DoctorAssignable reports whether a doctor may set s on their own appointments.
func (s AppointmentStatus) DoctorAssignable() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusRescheduledByDoctor:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// InConflictWindow reports whether an existing appointment at existing blocks
// a candidate slot at candidate. The window boundary is exclusive on both sides.
func InConflictWindow(existing, candidate time.Time) bool {
	d := existing.Sub(candidate)
	return d > -ConflictWindow && d < ConflictWindow
}

// Appointment links one patient, one doctor and one procedure at a point in time.
type Appointment struct {
	ID                  int               `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID            int               `gorm:"not null;index" json:"doctor_id"`
	ProcedureID         int               `gorm:"not null;index" json:"procedure_id"`
	AppointmentDatetime time.Time         `gorm:"not null;index" json:"appointment_datetime"`
	Status              AppointmentStatus `gorm:"type:varchar(30);not null;default:'scheduled';index" json:"status"`
	PatientNotes        string            `gorm:"type:text" json:"patient_notes,omitempty"`
	AdminNotes          string            `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt           time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   User      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Procedure Procedure `gorm:"foreignKey:ProcedureID" json:"procedure,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPast reports whether the appointment datetime lies before now.
func (a *Appointment) IsPast(now time.Time) bool {
	return a.AppointmentDatetime.Before(now)
}
