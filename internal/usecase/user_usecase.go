package usecase

import (
	"context"

	"clinic-booking-api/internal/converter"
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/delivery/http/middleware"
	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/domain/repository"
	"clinic-booking-api/internal/policy"
	"clinic-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserUsecase interface {
	List(ctx context.Context, page, perPage int) ([]dto.UserResponse, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	gate         *policy.Gate
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	gate *policy.Gate,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		gate:         gate,
	}
}

func (u *userUsecase) List(ctx context.Context, page, perPage int) ([]dto.UserResponse, int64, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, 0, ErrActorMissing
	}
	if err := u.gate.User(actor, policy.ActionView, nil); err != nil {
		return nil, 0, err
	}

	users, total, err := u.userRepo.FindAll(u.db.WithContext(ctx), perPage, (page-1)*perPage)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, 0, err
	}

	return converter.UsersToResponses(users), total, nil
}

func (u *userUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	if err := u.gate.User(actor, policy.ActionView, nil); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// Create adds an account with an explicit role. Unlike self-registration this
// can mint admin and doctor accounts.
func (u *userUsecase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	if err := u.gate.User(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		Role:     entity.Role(req.Role),
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionUserRegister, "user", user.ID.String(), map[string]interface{}{
		"email": user.Email,
		"role":  string(user.Role),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.gate.User(actor, policy.ActionUpdate, user); err != nil {
		return nil, err
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		user.Role = entity.Role(req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = req.IsActive
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, entity.AuditActionUserUpdate, "user", id.String(), nil, map[string]interface{}{
		"email":     user.Email,
		"role":      string(user.Role),
		"is_active": user.IsActive,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// Delete removes an account. Deleting one's own account is always denied,
// admin role included.
func (u *userUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		return ErrActorMissing
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := u.gate.User(actor, policy.ActionDelete, user); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.userRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.ID, entity.AuditActionUserDelete, "user", id.String(), map[string]interface{}{
		"email": user.Email,
		"role":  string(user.Role),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
