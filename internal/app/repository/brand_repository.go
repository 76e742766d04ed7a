package repository

import (
	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type BrandRepository interface {
	Create(brand *model.Brand) error
	FindAll(activeOnly bool) ([]model.Brand, error)
	FindByID(id uint) (*model.Brand, error)
	FindBySlug(slug string) (*model.Brand, error)
	Update(brand *model.Brand) error
	Delete(id uint) error
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

func (r *brandRepository) Create(brand *model.Brand) error {
	if err := r.db.Create(brand).Error; err != nil {
		logger.Error("Failed to create brand in database", err, map[string]interface{}{
			"name": brand.Name,
		})
		return err
	}
	return nil
}

func (r *brandRepository) FindAll(activeOnly bool) ([]model.Brand, error) {
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var brands []model.Brand
	if err := query.Find(&brands).Error; err != nil {
		logger.Error("Failed to list brands", err, nil)
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) FindByID(id uint) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) FindBySlug(slug string) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.Where("slug = ?", slug).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) Update(brand *model.Brand) error {
	if err := r.db.Save(brand).Error; err != nil {
		logger.Error("Failed to update brand in database", err, map[string]interface{}{
			"brand_id": brand.ID,
		})
		return err
	}
	return nil
}

func (r *brandRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Brand{}, id).Error; err != nil {
		logger.Error("Failed to delete brand from database", err, map[string]interface{}{
			"brand_id": id,
		})
		return err
	}
	return nil
}
