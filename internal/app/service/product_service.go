package service

import (
	"errors"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"github.com/Iwamergun/dentalmarket-backend/pkg/util"
	"gorm.io/gorm"
)

type ProductService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductBySlug(slug string) (*model.Product, error)
	GetPopularProducts(limit int) ([]model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error

	AddVariant(productID uint, variant *model.ProductVariant) error
	UpdateVariant(variant *model.ProductVariant) error
	DeleteVariant(productID, variantID uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.ProductVariantRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.FindAll(filter)
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetPopularProducts(limit int) ([]model.Product, error) {
	return s.productRepo.FindPopular(limit)
}

func (s *productService) CreateProduct(product *model.Product) error {
	if product.Slug == "" {
		product.Slug = util.Slugify(product.Name)
	}

	logger.Info("Creating product", map[string]interface{}{
		"name":        product.Name,
		"slug":        product.Slug,
		"sku":         product.SKU,
		"category_id": product.CategoryID,
	})

	if _, err := s.categoryRepo.FindByID(product.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	return s.productRepo.Create(product)
}

func (s *productService) UpdateProduct(product *model.Product) error {
	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if product.Slug == "" {
		product.Slug = existing.Slug
	}
	product.CreatedAt = existing.CreatedAt

	logger.Info("Updating product", map[string]interface{}{
		"product_id": product.ID,
	})
	return s.productRepo.Update(product)
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})
	return s.productRepo.Delete(id)
}

func (s *productService) AddVariant(productID uint, variant *model.ProductVariant) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	variant.ProductID = productID
	return s.variantRepo.Create(variant)
}

func (s *productService) UpdateVariant(variant *model.ProductVariant) error {
	existing, err := s.variantRepo.FindByID(variant.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVariant
		}
		return err
	}

	variant.ProductID = existing.ProductID
	variant.CreatedAt = existing.CreatedAt
	return s.variantRepo.Update(variant)
}

func (s *productService) DeleteVariant(productID, variantID uint) error {
	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVariant
		}
		return err
	}
	if variant.ProductID != productID {
		return ErrInvalidVariant
	}

	return s.variantRepo.Delete(variantID)
}
