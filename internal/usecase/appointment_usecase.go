package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/policy"
	"clinic-booking-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrNotCancellable        = errors.New("appointment is no longer cancellable")
	ErrInvalidDatetime       = errors.New("invalid appointment datetime format")
	ErrInvalidStatus         = errors.New("unknown appointment status")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrStatusNotAssignable   = errors.New("doctors cannot assign this status")
	ErrActorMissing          = errors.New("user not found in context")
	ErrNoLinkedDoctorProfile = errors.New("no doctor profile linked to this account")
)

// Accepted datetime layouts for appointment requests.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	CheckAvailability(ctx context.Context, doctorID int, datetime string) error
	GetMyAppointments(ctx context.Context, page, perPage int) ([]dto.AppointmentResponse, int64, error)
	Get(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	CancelByPatient(ctx context.Context, id int) (*dto.CancelAppointmentResponse, error)
	GetDoctorAppointments(ctx context.Context, page, perPage int) ([]dto.AppointmentResponse, int64, error)
	UpdateStatusByDoctor(ctx context.Context, id int, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	ListAll(ctx context.Context, page, perPage int) ([]dto.AppointmentResponse, int64, error)
	UpdateByAdmin(ctx context.Context, id int, req *dto.AdminUpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteByAdmin(ctx context.Context, id int) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	procedureRepo   repository.ProcedureRepository
	availability    *service.AvailabilityService
	notifier        *service.NotificationService
	auditService    service.AuditService
	gate            *policy.Gate
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	procedureRepo repository.ProcedureRepository,
	availability *service.AvailabilityService,
	notifier *service.NotificationService,
	auditService service.AuditService,
	gate *policy.Gate,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		procedureRepo:   procedureRepo,
		availability:    availability,
		notifier:        notifier,
		auditService:    auditService,
		gate:            gate,
	}
}

// Create books a new appointment for the logged-in patient.
//
// Flow:
// 1. Parse and validate the requested datetime
// 2. Begin transaction, lock the doctor row (serializes concurrent bookings)
// 3. Validate procedure exists
// 4. Re-check slot availability inside the transaction
// 5. Insert with status=scheduled, write audit entry, commit
// 6. Queue the confirmation notification (fire-and-forget)
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	if err := u.gate.Appointment(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}

	datetime, err := parseDatetime(req.AppointmentDatetime)
	if err != nil {
		return nil, ErrInvalidDatetime
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Lock the doctor row first. Two concurrent bookings for the same doctor
	// serialize here, so the conflict check below cannot miss a commit.
	doctor, err := u.doctorRepo.FindByIDForUpdate(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to lock doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, service.ErrUnknownDoctor
	}

	procedure, err := u.procedureRepo.FindByID(tx, req.ProcedureID)
	if err != nil {
		u.log.Warnf("Failed to find procedure %d: %+v", req.ProcedureID, err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}

	if err := u.availability.CheckSlotTx(tx, req.DoctorID, datetime); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:           actor.ID,
		DoctorID:            req.DoctorID,
		ProcedureID:         req.ProcedureID,
		AppointmentDatetime: datetime,
		Status:              entity.StatusScheduled,
		PatientNotes:        req.PatientNotes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isForeignKeyError(err, "doctor") {
			return nil, service.ErrUnknownDoctor
		}
		if isForeignKeyError(err, "procedure") {
			return nil, ErrProcedureNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionAppointmentCreate, "appointment", strconv.Itoa(appointment.ID), map[string]interface{}{
		"doctor_id":            appointment.DoctorID,
		"procedure_id":         appointment.ProcedureID,
		"appointment_datetime": appointment.AppointmentDatetime,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Reload with relations for the response and the notification payload
	created, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || created == nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.notifier.AppointmentCreated(created)

	return converter.AppointmentToResponse(created), nil
}

// CheckAvailability validates a candidate slot without booking it.
func (u *appointmentUsecase) CheckAvailability(ctx context.Context, doctorID int, datetime string) error {
	candidate, err := parseDatetime(datetime)
	if err != nil {
		return ErrInvalidDatetime
	}
	return u.availability.CheckSlot(doctorID, candidate)
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, page, perPage int) ([]dto.AppointmentResponse, int64, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, 0, ErrActorMissing
	}

	appointments, total, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), actor.ID, perPage, (page-1)*perPage)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", actor.ID, err)
		return nil, 0, err
	}

	return converter.AppointmentsToResponses(appointments), total, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := u.gate.Appointment(actor, policy.ActionView, appointment); err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// CancelByPatient cancels the patient's own appointment. The status flip is a
// single guarded UPDATE, so a concurrent cancel or status change loses cleanly.
func (u *appointmentUsecase) CancelByPatient(ctx context.Context, id int) (*dto.CancelAppointmentResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := u.gate.Appointment(actor, policy.ActionDelete, appointment); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.CancelByPatient(tx, id)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %d: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return cancelOutcome(appointment)
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionAppointmentCancel, "appointment", strconv.Itoa(id),
		string(appointment.Status), string(entity.StatusCancelledByPatient)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Status = entity.StatusCancelledByPatient
	u.notifier.AppointmentCancelled(appointment)

	return &dto.CancelAppointmentResponse{
		ID:     appointment.ID,
		Status: string(entity.StatusCancelledByPatient),
	}, nil
}

// GetDoctorAppointments lists appointments for the doctor profile linked to
// the logged-in doctor account.
func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, page, perPage int) ([]dto.AppointmentResponse, int64, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, 0, ErrActorMissing
	}

	profiles, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profiles for user %s: %+v", actor.ID, err)
		return nil, 0, err
	}
	if len(profiles) == 0 {
		return nil, 0, ErrNoLinkedDoctorProfile
	}

	appointments, total, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), profiles[0].ID, perPage, (page-1)*perPage)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %d: %+v", profiles[0].ID, err)
		return nil, 0, err
	}

	return converter.AppointmentsToResponses(appointments), total, nil
}

// UpdateStatusByDoctor moves an appointment through the doctor-assignable
// subset of the lifecycle (confirmed, completed, rescheduled_by_doctor).
func (u *appointmentUsecase) UpdateStatusByDoctor(ctx context.Context, id int, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	next := entity.AppointmentStatus(req.Status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	if !next.DoctorAssignable() {
		return nil, ErrStatusNotAssignable
	}

	return u.updateStatus(ctx, actor, id, next, nil)
}

func (u *appointmentUsecase) ListAll(ctx context.Context, page, perPage int) ([]dto.AppointmentResponse, int64, error) {
	appointments, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), perPage, (page-1)*perPage)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, 0, err
	}

	return converter.AppointmentsToResponses(appointments), total, nil
}

// UpdateByAdmin lets an admin move the appointment to any status the
// lifecycle allows and attach internal notes.
func (u *appointmentUsecase) UpdateByAdmin(ctx context.Context, id int, req *dto.AdminUpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	if req.Status != "" {
		next := entity.AppointmentStatus(req.Status)
		if !next.Valid() {
			return nil, ErrInvalidStatus
		}
		return u.updateStatus(ctx, actor, id, next, req.AdminNotes)
	}

	// Notes-only update
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if err := u.gate.Appointment(actor, policy.ActionUpdate, appointment); err != nil {
		return nil, err
	}
	if req.AdminNotes == nil {
		return converter.AppointmentToResponse(appointment), nil
	}

	appointment.AdminNotes = *req.AdminNotes
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) DeleteByAdmin(ctx context.Context, id int) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return ErrActorMissing
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := u.gate.Appointment(actor, policy.ActionDelete, appointment); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.ID, entity.AuditActionAppointmentDelete, "appointment", strconv.Itoa(id), map[string]interface{}{
		"status":               string(appointment.Status),
		"appointment_datetime": appointment.AppointmentDatetime,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// updateStatus is the shared lifecycle transition: authorize, validate the
// transition, persist, audit and notify.
func (u *appointmentUsecase) updateStatus(ctx context.Context, actor *entity.User, id int, next entity.AppointmentStatus, adminNotes *string) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := u.gate.Appointment(actor, policy.ActionUpdate, appointment); err != nil {
		return nil, err
	}

	if !canAssignStatus(actor, appointment.Status, next) {
		return nil, ErrInvalidTransition
	}

	previous := appointment.Status
	appointment.Status = next
	if adminNotes != nil {
		appointment.AdminNotes = *adminNotes
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionAppointmentStatusUpdate, "appointment", strconv.Itoa(id),
		string(previous), string(next)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if next.IsCancelled() {
		u.notifier.AppointmentCancelled(appointment)
	} else {
		u.notifier.AppointmentStatusChanged(appointment)
	}

	return converter.AppointmentToResponse(appointment), nil
}

// cancelOutcome resolves a cancel whose guarded UPDATE matched no rows: a
// repeat cancel of an already-cancelled appointment succeeds idempotently,
// any other terminal status refuses.
func cancelOutcome(appointment *entity.Appointment) (*dto.CancelAppointmentResponse, error) {
	if appointment.Status.IsCancelled() {
		return &dto.CancelAppointmentResponse{
			ID:      appointment.ID,
			Status:  string(appointment.Status),
			Message: "Appointment was already cancelled",
		}, nil
	}
	return nil, ErrNotCancellable
}

// canAssignStatus reports whether the actor may move an appointment to the
// next status. Admins may set any defined status, including correcting a
// terminal one; other roles follow the transition table.
func canAssignStatus(actor *entity.User, current, next entity.AppointmentStatus) bool {
	if actor.Role == entity.RoleAdmin {
		return true
	}
	return current.CanTransitionTo(next)
}

func parseDatetime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
