package service

import (
	"errors"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"github.com/Iwamergun/dentalmarket-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrBrandNotFound    = errors.New("brand not found")
)

// CatalogService manages the category tree and the brand list.
type CatalogService interface {
	ListCategories(activeOnly bool) ([]model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	CreateCategory(category *model.Category) error
	UpdateCategory(category *model.Category) error
	DeleteCategory(id uint) error

	ListBrands(activeOnly bool) ([]model.Brand, error)
	GetBrandBySlug(slug string) (*model.Brand, error)
	CreateBrand(brand *model.Brand) error
	UpdateBrand(brand *model.Brand) error
	DeleteBrand(id uint) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

func (s *catalogService) ListCategories(activeOnly bool) ([]model.Category, error) {
	return s.categoryRepo.FindAll(activeOnly)
}

func (s *catalogService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) CreateCategory(category *model.Category) error {
	if category.Slug == "" {
		category.Slug = util.Slugify(category.Name)
	}

	logger.Info("Creating category", map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	})

	if category.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(*category.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}

	return s.categoryRepo.Create(category)
}

func (s *catalogService) UpdateCategory(category *model.Category) error {
	existing, err := s.categoryRepo.FindByID(category.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if category.Slug == "" {
		category.Slug = existing.Slug
	}
	category.CreatedAt = existing.CreatedAt

	logger.Info("Updating category", map[string]interface{}{
		"category_id": category.ID,
	})
	return s.categoryRepo.Update(category)
}

func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	logger.Info("Deleting category", map[string]interface{}{
		"category_id": id,
	})
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) ListBrands(activeOnly bool) ([]model.Brand, error) {
	return s.brandRepo.FindAll(activeOnly)
}

func (s *catalogService) GetBrandBySlug(slug string) (*model.Brand, error) {
	brand, err := s.brandRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	return brand, nil
}

func (s *catalogService) CreateBrand(brand *model.Brand) error {
	if brand.Slug == "" {
		brand.Slug = util.Slugify(brand.Name)
	}

	logger.Info("Creating brand", map[string]interface{}{
		"name": brand.Name,
		"slug": brand.Slug,
	})
	return s.brandRepo.Create(brand)
}

func (s *catalogService) UpdateBrand(brand *model.Brand) error {
	existing, err := s.brandRepo.FindByID(brand.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBrandNotFound
		}
		return err
	}

	if brand.Slug == "" {
		brand.Slug = existing.Slug
	}
	brand.CreatedAt = existing.CreatedAt

	return s.brandRepo.Update(brand)
}

func (s *catalogService) DeleteBrand(id uint) error {
	if _, err := s.brandRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBrandNotFound
		}
		return err
	}

	return s.brandRepo.Delete(id)
}
