package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	apperrors "github.com/Iwamergun/dentalmarket-backend/internal/errors"
	"github.com/Iwamergun/dentalmarket-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

type BrandRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug"`
	Country  string `json:"country"`
	IsActive *bool  `json:"is_active"`
}

// ListCategories returns the category tree
// GET /api/v1/categories
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"

	categories, err := ctrl.catalogService.ListCategories(activeOnly)
	if err != nil {
		apperrors.InternalError(c, "Kategoriler yüklenemedi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// GetCategory returns one category by slug
// GET /api/v1/categories/:slug
func (ctrl *CatalogController) GetCategory(c *gin.Context) {
	category, err := ctrl.catalogService.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Kategori bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// CreateCategory creates a category (admin)
// POST /api/v1/categories
func (ctrl *CatalogController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &model.Category{
		Name:      req.Name,
		Slug:      req.Slug,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
		IsActive:  isActive,
	}

	if err := ctrl.catalogService.CreateCategory(category); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Üst kategori bulunamadı")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// UpdateCategory updates a category (admin)
// PUT /api/v1/categories/:id
func (ctrl *CatalogController) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz kategori numarası")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	category := &model.Category{
		Name:      req.Name,
		Slug:      req.Slug,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	}
	category.ID = uint(id)
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	} else {
		category.IsActive = true
	}

	if err := ctrl.catalogService.UpdateCategory(category); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Kategori bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// DeleteCategory deletes a category (admin)
// DELETE /api/v1/categories/:id
func (ctrl *CatalogController) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz kategori numarası")
		return
	}

	if err := ctrl.catalogService.DeleteCategory(uint(id)); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Kategori bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Kategori silindi",
	})
}

// ListBrands returns all brands
// GET /api/v1/brands
func (ctrl *CatalogController) ListBrands(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"

	brands, err := ctrl.catalogService.ListBrands(activeOnly)
	if err != nil {
		apperrors.InternalError(c, "Markalar yüklenemedi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brands": brands,
	})
}

// CreateBrand creates a brand (admin)
// POST /api/v1/brands
func (ctrl *CatalogController) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	brand := &model.Brand{
		Name:     req.Name,
		Slug:     req.Slug,
		Country:  req.Country,
		IsActive: true,
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}

	if err := ctrl.catalogService.CreateBrand(brand); err != nil {
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "brand")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"brand": brand,
	})
}

// UpdateBrand updates a brand (admin)
// PUT /api/v1/brands/:id
func (ctrl *CatalogController) UpdateBrand(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz marka numarası")
		return
	}

	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	brand := &model.Brand{
		Name:     req.Name,
		Slug:     req.Slug,
		Country:  req.Country,
		IsActive: true,
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}
	brand.ID = uint(id)

	if err := ctrl.catalogService.UpdateBrand(brand); err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			apperrors.NotFound(c, apperrors.CatalogBrandNotFound, "Marka bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "brand")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"brand": brand,
	})
}

// DeleteBrand deletes a brand (admin)
// DELETE /api/v1/brands/:id
func (ctrl *CatalogController) DeleteBrand(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz marka numarası")
		return
	}

	if err := ctrl.catalogService.DeleteBrand(uint(id)); err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			apperrors.NotFound(c, apperrors.CatalogBrandNotFound, "Marka bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "brand")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Marka silindi",
	})
}
