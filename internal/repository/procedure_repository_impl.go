package repository

import (
	"errors"

	"clinic-booking-api/internal/domain/entity"
	domainRepo "clinic-booking-api/internal/domain/repository"

	"gorm.io/gorm"
)

type procedureRepository struct{}

func NewProcedureRepository() domainRepo.ProcedureRepository {
	return &procedureRepository{}
}

func (r *procedureRepository) Create(db *gorm.DB, procedure *entity.Procedure) error {
	return db.Create(procedure).Error
}

func (r *procedureRepository) FindByID(db *gorm.DB, id int) (*entity.Procedure, error) {
	var procedure entity.Procedure
	err := db.Preload("Category").Where("id = ?", id).First(&procedure).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &procedure, nil
}

func (r *procedureRepository) FindAll(db *gorm.DB, filter *entity.ProcedureFilter, limit, offset int) ([]entity.Procedure, int64, error) {
	var procedures []entity.Procedure
	var total int64

	query := db.Model(&entity.Procedure{})
	if filter != nil {
		if filter.Name != "" {
			query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.CategoryID != 0 {
			query = query.Where("category_id = ?", filter.CategoryID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Category").Limit(limit).Offset(offset).Order("name ASC").Find(&procedures).Error
	if err != nil {
		return nil, 0, err
	}
	return procedures, total, nil
}

func (r *procedureRepository) Update(db *gorm.DB, procedure *entity.Procedure) error {
	return db.Omit("Category").Save(procedure).Error
}

func (r *procedureRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Procedure{})
	return result.RowsAffected, result.Error
}

type procedureCategoryRepository struct{}

func NewProcedureCategoryRepository() domainRepo.ProcedureCategoryRepository {
	return &procedureCategoryRepository{}
}

func (r *procedureCategoryRepository) Create(db *gorm.DB, category *entity.ProcedureCategory) error {
	return db.Create(category).Error
}

func (r *procedureCategoryRepository) FindByID(db *gorm.DB, id int) (*entity.ProcedureCategory, error) {
	var category entity.ProcedureCategory
	err := db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *procedureCategoryRepository) FindBySlug(db *gorm.DB, slug string) (*entity.ProcedureCategory, error) {
	var category entity.ProcedureCategory
	err := db.Preload("Procedures").Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *procedureCategoryRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.ProcedureCategory, int64, error) {
	var categories []entity.ProcedureCategory
	var total int64

	if err := db.Model(&entity.ProcedureCategory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Limit(limit).Offset(offset).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *procedureCategoryRepository) Update(db *gorm.DB, category *entity.ProcedureCategory) error {
	return db.Omit("Procedures").Save(category).Error
}

func (r *procedureCategoryRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.ProcedureCategory{})
	return result.RowsAffected, result.Error
}
