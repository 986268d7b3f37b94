package usecase

import (
	"context"
	"errors"
	"strconv"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/policy"
	"clinic-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrLinkedUserNotFound = errors.New("linked user account not found")
	ErrDoctorHasBookings  = errors.New("doctor has appointments and cannot be removed")
)

type DoctorUsecase interface {
	List(ctx context.Context, filter *entity.DoctorFilter, page, perPage int) ([]dto.DoctorResponse, int64, error)
	Get(ctx context.Context, id int) (*dto.DoctorResponse, error)
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id int) error
	GetMyProfile(ctx context.Context) (*dto.DoctorResponse, error)
	UpdateMyProfile(ctx context.Context, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	userRepo     repository.UserRepository
	auditService service.AuditService
	gate         *policy.Gate
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	gate *policy.Gate,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		userRepo:     userRepo,
		auditService: auditService,
		gate:         gate,
	}
}

// List returns the public doctor catalog with optional name and
// specialization filters.
func (u *doctorUsecase) List(ctx context.Context, filter *entity.DoctorFilter, page, perPage int) ([]dto.DoctorResponse, int64, error) {
	doctors, total, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), filter, perPage, (page-1)*perPage)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, 0, err
	}

	return converter.DoctorsToResponses(doctors), total, nil
}

func (u *doctorUsecase) Get(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// Create adds a doctor profile. When a user account is linked, the account is
// promoted to the doctor role in the same transaction.
func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	if err := u.gate.Doctor(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	priceModifier := req.PriceModifier
	if priceModifier.IsZero() {
		priceModifier = decimal.NewFromInt(1)
	}

	doctor := &entity.Doctor{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
		Biography:      req.Biography,
		PriceModifier:  priceModifier,
		UserID:         req.UserID,
	}

	if req.UserID != nil {
		user, err := u.userRepo.FindByID(tx, *req.UserID)
		if err != nil {
			u.log.Warnf("Failed to find user %s: %+v", *req.UserID, err)
			return nil, err
		}
		if user == nil {
			return nil, ErrLinkedUserNotFound
		}
		if user.Role != entity.RoleDoctor {
			if err := u.userRepo.UpdateRole(tx, user.ID, entity.RoleDoctor); err != nil {
				u.log.Warnf("Failed to promote user %s to doctor: %+v", user.ID, err)
				return nil, err
			}
		}
	}

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		if isForeignKeyError(err, "user") {
			return nil, ErrLinkedUserNotFound
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionDoctorCreate, "doctor", strconv.Itoa(doctor.ID), map[string]interface{}{
		"first_name":     doctor.FirstName,
		"last_name":      doctor.LastName,
		"specialization": doctor.Specialization,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	return u.update(ctx, actor, id, req)
}

// Delete removes a doctor profile. A linked user account is demoted back to
// patient when this was its last remaining profile.
func (u *doctorUsecase) Delete(ctx context.Context, id int) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return ErrActorMissing
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if err := u.gate.Doctor(actor, policy.ActionDelete, doctor); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.doctorRepo.Delete(tx, id)
	if err != nil {
		if isForeignKeyError(err, "appointment") {
			return ErrDoctorHasBookings
		}
		u.log.Warnf("Failed to delete doctor %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}

	if doctor.UserID != nil {
		if err := u.demoteIfLastProfile(tx, *doctor.UserID); err != nil {
			return err
		}
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.ID, entity.AuditActionDoctorDelete, "doctor", strconv.Itoa(id), map[string]interface{}{
		"first_name": doctor.FirstName,
		"last_name":  doctor.LastName,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// demoteIfLastProfile returns a linked account to the patient role once its
// last doctor profile is gone. Accounts with another remaining profile keep
// the doctor role.
func (u *doctorUsecase) demoteIfLastProfile(tx *gorm.DB, userID uuid.UUID) error {
	remaining, err := u.doctorRepo.CountByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to count profiles for user %s: %+v", userID, err)
		return err
	}
	if remaining > 0 {
		return nil
	}

	if err := u.userRepo.UpdateRole(tx, userID, entity.RolePatient); err != nil {
		u.log.Warnf("Failed to demote user %s to patient: %+v", userID, err)
		return err
	}

	return nil
}

// GetMyProfile returns the doctor profile linked to the logged-in account.
func (u *doctorUsecase) GetMyProfile(ctx context.Context) (*dto.DoctorResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	profiles, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profiles for user %s: %+v", actor.ID, err)
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrNoLinkedDoctorProfile
	}

	return converter.DoctorToResponse(&profiles[0]), nil
}

func (u *doctorUsecase) UpdateMyProfile(ctx context.Context, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	profiles, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profiles for user %s: %+v", actor.ID, err)
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrNoLinkedDoctorProfile
	}

	return u.update(ctx, actor, profiles[0].ID, req)
}

// update applies a partial profile update after the gate check.
func (u *doctorUsecase) update(ctx context.Context, actor *entity.User, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := u.gate.Doctor(actor, policy.ActionUpdate, doctor); err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		doctor.FirstName = req.FirstName
	}
	if req.LastName != "" {
		doctor.LastName = req.LastName
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.Biography != nil {
		doctor.Biography = *req.Biography
	}
	if req.PriceModifier != nil {
		doctor.PriceModifier = *req.PriceModifier
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionDoctorUpdate, "doctor", strconv.Itoa(id), nil, map[string]interface{}{
		"first_name":     doctor.FirstName,
		"last_name":      doctor.LastName,
		"specialization": doctor.Specialization,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}
