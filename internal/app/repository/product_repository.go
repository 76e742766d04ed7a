package repository

import (
	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProductFilter narrows FindAll results. Zero values mean "no filter".
type ProductFilter struct {
	CategorySlug string
	BrandSlug    string
	Search       string
	MinPrice     float64
	MaxPrice     float64
	ActiveOnly   bool
	SortBy       string // "price_asc", "price_desc", "newest", "name"
	Page         int
	PageSize     int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, int64, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	// FindPopular ranks active products by total ordered quantity.
	FindPopular(limit int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name": product.Name,
		"sku":  product.SKU,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
			"sku":  product.SKU,
		})
		return err
	}

	return nil
}

func (r *productRepository) FindAll(filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.Model(&model.Product{})

	if filter.ActiveOnly {
		query = query.Where("products.is_active = ?", true)
	}
	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.BrandSlug != "" {
		query = query.Joins("JOIN brands ON brands.id = products.brand_id").
			Where("brands.slug = ?", filter.BrandSlug)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("LOWER(products.name) LIKE LOWER(?) OR LOWER(products.sku) LIKE LOWER(?)", like, like)
	}
	if filter.MinPrice > 0 {
		query = query.Where("products.price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("products.price <= ?", filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count products", err, nil)
		return nil, 0, err
	}

	switch filter.SortBy {
	case "price_asc":
		query = query.Order("products.price ASC")
	case "price_desc":
		query = query.Order("products.price DESC")
	case "name":
		query = query.Order("products.name ASC")
	default:
		query = query.Order("products.created_at DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 24
	}

	var products []model.Product
	err := query.
		Preload("Category").
		Preload("Brand").
		Preload("Variants").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to list products", err, nil)
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Brand").Preload("Variants").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Brand").Preload("Variants").
		Where("slug = ?", slug).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindPopular(limit int) ([]model.Product, error) {
	if limit < 1 || limit > 50 {
		limit = 8
	}

	var products []model.Product
	err := r.db.Model(&model.Product{}).
		Select("products.*").
		Joins("LEFT JOIN order_items ON order_items.product_id = products.id").
		Where("products.is_active = ?", true).
		Group("products.id").
		Order("COALESCE(SUM(order_items.quantity), 0) DESC, products.created_at DESC").
		Limit(limit).
		Preload("Category").
		Preload("Brand").
		Preload("Variants").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to list popular products", err, nil)
		return nil, err
	}

	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	return nil
}

func (r *productRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}
