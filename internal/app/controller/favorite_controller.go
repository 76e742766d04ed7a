package controller

import (
	"net/http"
	"strconv"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	"github.com/Iwamergun/dentalmarket-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

type ToggleFavoriteRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// favoriteScope derives the favorites bucket for this request. Logged-in
// users get their own bucket; everyone else shares the guest bucket.
func favoriteScope(c *gin.Context) string {
	if userID, ok := middleware.GetUserID(c); ok {
		return strconv.FormatUint(uint64(userID), 10)
	}
	return service.GuestScope
}

// GetFavorites returns the favorited product IDs for the current scope
// GET /api/v1/favorites
func (ctrl *FavoriteController) GetFavorites(c *gin.Context) {
	scope := favoriteScope(c)

	ids, err := ctrl.favoriteService.GetFavorites(c.Request.Context(), scope)
	if err != nil {
		log := middleware.GetLoggerFromContext(c)
		log.Error("Failed to load favorites", err, map[string]interface{}{
			"scope": scope,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Favoriler yüklenemedi",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_ids": ids,
		"count":       len(ids),
	})
}

// GetFavoriteCount returns only the badge count
// GET /api/v1/favorites/count
func (ctrl *FavoriteController) GetFavoriteCount(c *gin.Context) {
	scope := favoriteScope(c)

	count, err := ctrl.favoriteService.Count(c.Request.Context(), scope)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Favori sayısı alınamadı",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": count,
	})
}

// ToggleFavorite flips favorite membership for a product. Always succeeds;
// the response tells the client which state the product ended up in.
// POST /api/v1/favorites/toggle
func (ctrl *FavoriteController) ToggleFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	scope := favoriteScope(c)

	var req ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Geçersiz istek",
			"details": err.Error(),
		})
		return
	}

	favorited := ctrl.favoriteService.ToggleFavorite(c.Request.Context(), scope, req.ProductID)

	log.Debug("Favorite toggled", map[string]interface{}{
		"scope":      scope,
		"product_id": req.ProductID,
		"favorited":  favorited,
	})

	c.JSON(http.StatusOK, gin.H{
		"product_id": req.ProductID,
		"favorited":  favorited,
	})
}

// CheckFavorite reports whether one product is in the current scope's favorites
// GET /api/v1/favorites/:product_id
func (ctrl *FavoriteController) CheckFavorite(c *gin.Context) {
	scope := favoriteScope(c)

	idStr := c.Param("product_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Geçersiz ürün",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id": uint(id),
		"favorited":  ctrl.favoriteService.IsFavorite(c.Request.Context(), scope, uint(id)),
	})
}

// AddFavorite adds a product to favorites (idempotent)
// POST /api/v1/favorites
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	scope := favoriteScope(c)

	var req ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Geçersiz istek",
			"details": err.Error(),
		})
		return
	}

	ids := ctrl.favoriteService.AddToFavorites(c.Request.Context(), scope, req.ProductID)

	c.JSON(http.StatusOK, gin.H{
		"product_ids": ids,
		"count":       len(ids),
	})
}

// RemoveFavorite removes a product from favorites (idempotent)
// DELETE /api/v1/favorites/:product_id
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	scope := favoriteScope(c)

	idStr := c.Param("product_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Geçersiz ürün",
		})
		return
	}

	ids := ctrl.favoriteService.RemoveFromFavorites(c.Request.Context(), scope, uint(id))

	c.JSON(http.StatusOK, gin.H{
		"product_ids": ids,
		"count":       len(ids),
	})
}

// ClearFavorites empties the current scope's favorites
// DELETE /api/v1/favorites
func (ctrl *FavoriteController) ClearFavorites(c *gin.Context) {
	scope := favoriteScope(c)

	ctrl.favoriteService.ClearFavorites(c.Request.Context(), scope)

	c.JSON(http.StatusOK, gin.H{
		"message": "Favoriler temizlendi",
	})
}
