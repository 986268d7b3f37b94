package repository

import (
	"clinic-booking-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ProcedureRepository interface {
	Create(db *gorm.DB, procedure *entity.Procedure) error
	FindByID(db *gorm.DB, id int) (*entity.Procedure, error)
	FindAll(db *gorm.DB, filter *entity.ProcedureFilter, limit, offset int) ([]entity.Procedure, int64, error)
	Update(db *gorm.DB, procedure *entity.Procedure) error
	Delete(db *gorm.DB, id int) (int64, error)
}

type ProcedureCategoryRepository interface {
	Create(db *gorm.DB, category *entity.ProcedureCategory) error
	FindByID(db *gorm.DB, id int) (*entity.ProcedureCategory, error)
	FindBySlug(db *gorm.DB, slug string) (*entity.ProcedureCategory, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.ProcedureCategory, int64, error)
	Update(db *gorm.DB, category *entity.ProcedureCategory) error
	Delete(db *gorm.DB, id int) (int64, error)
}
