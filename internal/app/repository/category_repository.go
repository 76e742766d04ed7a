package repository

import (
	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll(activeOnly bool) ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	FindBySlug(slug string) (*model.Category, error)
	Update(category *model.Category) error
	Delete(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
			"slug": category.Slug,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) FindAll(activeOnly bool) ([]model.Category, error) {
	query := r.db.Preload("Children").Where("parent_id IS NULL")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categories []model.Category
	if err := query.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list categories", err, nil)
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.Preload("Children").First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Preload("Children").Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

func (r *categoryRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Category{}, id).Error; err != nil {
		logger.Error("Failed to delete category from database", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	return nil
}
