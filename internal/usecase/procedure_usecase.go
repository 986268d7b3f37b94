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

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProcedureNotFound    = errors.New("procedure not found")
	ErrCategoryNotFound     = errors.New("procedure category not found")
	ErrProcedureHasBookings = errors.New("procedure has appointments and cannot be removed")
)

type ProcedureUsecase interface {
	List(ctx context.Context, filter *entity.ProcedureFilter, page, perPage int) ([]dto.ProcedureResponse, int64, error)
	Get(ctx context.Context, id int) (*dto.ProcedureResponse, error)
	Create(ctx context.Context, req *dto.CreateProcedureRequest) (*dto.ProcedureResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateProcedureRequest) (*dto.ProcedureResponse, error)
	Delete(ctx context.Context, id int) error
}

type procedureUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	procedureRepo repository.ProcedureRepository
	categoryRepo  repository.ProcedureCategoryRepository
	auditService  service.AuditService
	gate          *policy.Gate
}

func NewProcedureUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	procedureRepo repository.ProcedureRepository,
	categoryRepo repository.ProcedureCategoryRepository,
	auditService service.AuditService,
	gate *policy.Gate,
) ProcedureUsecase {
	return &procedureUsecase{
		db:            db,
		log:           log,
		procedureRepo: procedureRepo,
		categoryRepo:  categoryRepo,
		auditService:  auditService,
		gate:          gate,
	}
}

// List returns the public procedure catalog with optional name and category filters.
func (u *procedureUsecase) List(ctx context.Context, filter *entity.ProcedureFilter, page, perPage int) ([]dto.ProcedureResponse, int64, error) {
	procedures, total, err := u.procedureRepo.FindAll(u.db.WithContext(ctx), filter, perPage, (page-1)*perPage)
	if err != nil {
		u.log.Warnf("Failed to list procedures: %+v", err)
		return nil, 0, err
	}

	return converter.ProceduresToResponses(procedures), total, nil
}

func (u *procedureUsecase) Get(ctx context.Context, id int) (*dto.ProcedureResponse, error) {
	procedure, err := u.procedureRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find procedure %d: %+v", id, err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}

	return converter.ProcedureToResponse(procedure), nil
}

func (u *procedureUsecase) Create(ctx context.Context, req *dto.CreateProcedureRequest) (*dto.ProcedureResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	if err := u.gate.Procedure(actor, policy.ActionCreate); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if req.CategoryID != nil {
		category, err := u.categoryRepo.FindByID(tx, *req.CategoryID)
		if err != nil {
			u.log.Warnf("Failed to find category %d: %+v", *req.CategoryID, err)
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	procedure := &entity.Procedure{
		Name:         req.Name,
		Description:  req.Description,
		BasePrice:    req.BasePrice,
		CategoryID:   req.CategoryID,
		RecoveryInfo: req.RecoveryInfo,
	}

	if err := u.procedureRepo.Create(tx, procedure); err != nil {
		if isForeignKeyError(err, "category") {
			return nil, ErrCategoryNotFound
		}
		u.log.Warnf("Failed to create procedure: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionProcedureCreate, "procedure", strconv.Itoa(procedure.ID), map[string]interface{}{
		"name":       procedure.Name,
		"base_price": procedure.BasePrice,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ProcedureToResponse(procedure), nil
}

func (u *procedureUsecase) Update(ctx context.Context, id int, req *dto.UpdateProcedureRequest) (*dto.ProcedureResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	if err := u.gate.Procedure(actor, policy.ActionUpdate); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	procedure, err := u.procedureRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find procedure %d: %+v", id, err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}

	if req.Name != "" {
		procedure.Name = req.Name
	}
	if req.Description != nil {
		procedure.Description = *req.Description
	}
	if req.BasePrice != nil {
		procedure.BasePrice = *req.BasePrice
	}
	if req.CategoryID != nil {
		category, err := u.categoryRepo.FindByID(tx, *req.CategoryID)
		if err != nil {
			u.log.Warnf("Failed to find category %d: %+v", *req.CategoryID, err)
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		procedure.CategoryID = req.CategoryID
	}
	if req.RecoveryInfo != nil {
		procedure.RecoveryInfo = *req.RecoveryInfo
	}

	if err := u.procedureRepo.Update(tx, procedure); err != nil {
		u.log.Warnf("Failed to update procedure %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionProcedureUpdate, "procedure", strconv.Itoa(id), nil, map[string]interface{}{
		"name":       procedure.Name,
		"base_price": procedure.BasePrice,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ProcedureToResponse(procedure), nil
}

func (u *procedureUsecase) Delete(ctx context.Context, id int) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return ErrActorMissing
	}
	if err := u.gate.Procedure(actor, policy.ActionDelete); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	procedure, err := u.procedureRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find procedure %d: %+v", id, err)
		return err
	}
	if procedure == nil {
		return ErrProcedureNotFound
	}

	rows, err := u.procedureRepo.Delete(tx, id)
	if err != nil {
		if isForeignKeyError(err, "appointment") {
			return ErrProcedureHasBookings
		}
		u.log.Warnf("Failed to delete procedure %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrProcedureNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.ID, entity.AuditActionProcedureDelete, "procedure", strconv.Itoa(id), map[string]interface{}{
		"name": procedure.Name,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
