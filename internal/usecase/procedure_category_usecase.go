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
	ErrSlugExists            = errors.New("category slug already exists")
	ErrCategoryHasProcedures = errors.New("category still has procedures attached")
)

type ProcedureCategoryUsecase interface {
	List(ctx context.Context, page, perPage int) ([]dto.ProcedureCategoryResponse, int64, error)
	GetBySlug(ctx context.Context, slug string) (*dto.ProcedureCategoryResponse, error)
	Create(ctx context.Context, req *dto.CreateProcedureCategoryRequest) (*dto.ProcedureCategoryResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateProcedureCategoryRequest) (*dto.ProcedureCategoryResponse, error)
	Delete(ctx context.Context, id int) error
}

type procedureCategoryUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	categoryRepo repository.ProcedureCategoryRepository
	auditService service.AuditService
	gate         *policy.Gate
}

func NewProcedureCategoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	categoryRepo repository.ProcedureCategoryRepository,
	auditService service.AuditService,
	gate *policy.Gate,
) ProcedureCategoryUsecase {
	return &procedureCategoryUsecase{
		db:           db,
		log:          log,
		categoryRepo: categoryRepo,
		auditService: auditService,
		gate:         gate,
	}
}

func (u *procedureCategoryUsecase) List(ctx context.Context, page, perPage int) ([]dto.ProcedureCategoryResponse, int64, error) {
	categories, total, err := u.categoryRepo.FindAll(u.db.WithContext(ctx), perPage, (page-1)*perPage)
	if err != nil {
		u.log.Warnf("Failed to list categories: %+v", err)
		return nil, 0, err
	}

	return converter.ProcedureCategoriesToResponses(categories), total, nil
}

// GetBySlug returns a category with its procedures preloaded.
func (u *procedureCategoryUsecase) GetBySlug(ctx context.Context, slug string) (*dto.ProcedureCategoryResponse, error) {
	category, err := u.categoryRepo.FindBySlug(u.db.WithContext(ctx), slug)
	if err != nil {
		u.log.Warnf("Failed to find category %q: %+v", slug, err)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	return converter.ProcedureCategoryToResponse(category), nil
}

func (u *procedureCategoryUsecase) Create(ctx context.Context, req *dto.CreateProcedureCategoryRequest) (*dto.ProcedureCategoryResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	if err := u.gate.Procedure(actor, policy.ActionCreate); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category := &entity.ProcedureCategory{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := u.categoryRepo.Create(tx, category); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugExists
		}
		u.log.Warnf("Failed to create category: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionCategoryCreate, "procedure_category", strconv.Itoa(category.ID), map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ProcedureCategoryToResponse(category), nil
}

func (u *procedureCategoryUsecase) Update(ctx context.Context, id int, req *dto.UpdateProcedureCategoryRequest) (*dto.ProcedureCategoryResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	if err := u.gate.Procedure(actor, policy.ActionUpdate); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find category %d: %+v", id, err)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Slug != "" {
		category.Slug = req.Slug
	}

	if err := u.categoryRepo.Update(tx, category); err != nil {
		if isDuplicateKeyError(err, "slug") {
			return nil, ErrSlugExists
		}
		u.log.Warnf("Failed to update category %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionCategoryUpdate, "procedure_category", strconv.Itoa(id), nil, map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ProcedureCategoryToResponse(category), nil
}

func (u *procedureCategoryUsecase) Delete(ctx context.Context, id int) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return ErrActorMissing
	}
	if err := u.gate.Procedure(actor, policy.ActionDelete); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find category %d: %+v", id, err)
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	rows, err := u.categoryRepo.Delete(tx, id)
	if err != nil {
		if isForeignKeyError(err, "procedure") {
			return ErrCategoryHasProcedures
		}
		u.log.Warnf("Failed to delete category %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.ID, entity.AuditActionCategoryDelete, "procedure_category", strconv.Itoa(id), map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
