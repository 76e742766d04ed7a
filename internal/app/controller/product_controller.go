package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	apperrors "github.com/Iwamergun/dentalmarket-backend/internal/errors"
	"github.com/Iwamergun/dentalmarket-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	SKU           string   `json:"sku" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	StockQuantity int      `json:"stock_quantity" binding:"gte=0"`
	CategoryID    uint     `json:"category_id" binding:"required"`
	BrandID       *uint    `json:"brand_id"`
	Images        []string `json:"images"`
	IsActive      *bool    `json:"is_active"`
}

type VariantRequest struct {
	Name            string  `json:"name" binding:"required"`
	Value           string  `json:"value" binding:"required"`
	SKU             string  `json:"sku"`
	AdditionalPrice float64 `json:"additional_price"`
	StockQuantity   int     `json:"stock_quantity" binding:"gte=0"`
	IsDefault       bool    `json:"is_default"`
}

// ListProducts returns a filtered, paginated product list
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "24"))

	filter := repository.ProductFilter{
		CategorySlug: c.Query("category"),
		BrandSlug:    c.Query("brand"),
		Search:       c.Query("q"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		ActiveOnly:   true,
		SortBy:       c.Query("sort"),
		Page:         page,
		PageSize:     pageSize,
	}

	products, total, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to list products", err, map[string]interface{}{
			"filter": filter,
		})
		apperrors.InternalError(c, "Ürünler yüklenemedi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":  products,
		"total":     total,
		"page":      page,
		"page_size": filter.PageSize,
	})
}

// GetPopularProducts returns the best-selling active products
// GET /api/v1/products/popular
func (ctrl *ProductController) GetPopularProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	products, err := ctrl.productService.GetPopularProducts(limit)
	if err != nil {
		log.Error("Failed to list popular products", err, nil)
		apperrors.InternalError(c, "Ürünler yüklenemedi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
	})
}

// GetProduct returns a single product by slug
// GET /api/v1/products/:slug
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	product, err := ctrl.productService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Ürün bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product (supplier/admin)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Images:        req.Images,
		IsActive:      isActive,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Kategori bulunamadı")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"sku": req.SKU,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct updates an existing product (supplier/admin)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz ürün numarası")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	existing, err := ctrl.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Ürün bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product")
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.SKU = req.SKU
	existing.Price = req.Price
	existing.StockQuantity = req.StockQuantity
	existing.CategoryID = req.CategoryID
	existing.BrandID = req.BrandID
	existing.Images = req.Images
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := ctrl.productService.UpdateProduct(existing); err != nil {
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": existing,
	})
}

// DeleteProduct soft-deletes a product (admin)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz ürün numarası")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Ürün bulunamadı")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Ürün silindi",
	})
}

// AddVariant adds a variant to a product (supplier/admin)
// POST /api/v1/products/:id/variants
func (ctrl *ProductController) AddVariant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz ürün numarası")
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	variant := &model.ProductVariant{
		Name:            req.Name,
		Value:           req.Value,
		SKU:             req.SKU,
		AdditionalPrice: req.AdditionalPrice,
		StockQuantity:   req.StockQuantity,
		IsDefault:       req.IsDefault,
	}

	if err := ctrl.productService.AddVariant(uint(id), variant); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Ürün bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"variant": variant,
	})
}

// DeleteVariant removes a variant from a product (supplier/admin)
// DELETE /api/v1/products/:id/variants/:variant_id
func (ctrl *ProductController) DeleteVariant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz ürün numarası")
		return
	}
	variantID, err := strconv.ParseUint(c.Param("variant_id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz varyant numarası")
		return
	}

	if err := ctrl.productService.DeleteVariant(uint(id), uint(variantID)); err != nil {
		if errors.Is(err, service.ErrInvalidVariant) {
			apperrors.BadRequest(c, apperrors.CatalogInvalidVariant, "Varyant bu ürüne ait değil")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Varyant silindi",
	})
}
