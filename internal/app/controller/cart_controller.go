package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	"github.com/Iwamergun/dentalmarket-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartRequest struct {
	// quantity < 1 removes the line
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns user's cart with the computed summary
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Giriş yapmanız gerekiyor",
		})
		return
	}

	summary, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Sepet yüklenemedi",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items": summary.Items,
		"item_count": summary.ItemCount,
		"total":      summary.Total,
	})
}

// GetCartCount returns only the badge count
// GET /api/v1/cart/count
func (ctrl *CartController) GetCartCount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Giriş yapmanız gerekiyor",
		})
		return
	}

	count, err := ctrl.cartService.ItemCount(userID)
	if err != nil {
		log.Error("Failed to count cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Sepet sayısı alınamadı",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_count": count,
	})
}

// AddToCart adds item to cart, merging into an existing line when the
// same product and variant is already present
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Giriş yapmanız gerekiyor",
		})
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Geçersiz istek",
			"details": err.Error(),
		})
		return
	}

	log.Debug("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"variant_id": req.VariantID,
		"quantity":   req.Quantity,
	})

	err := ctrl.cartService.AddToCart(userID, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Ürün bulunamadı",
			})
		case errors.Is(err, service.ErrProductInactive):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Ürün satışta değil",
			})
		case errors.Is(err, service.ErrInvalidVariant):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Geçersiz ürün varyantı",
			})
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Yetersiz stok",
			})
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Ürün sepete eklenemedi",
			})
		}
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"variant_id": req.VariantID,
		"quantity":   req.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ürün sepete eklendi",
	})
}

// UpdateCartItem updates cart item quantity; zero or negative removes the line
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Giriş yapmanız gerekiyor",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Geçersiz sepet satırı",
		})
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Geçersiz istek",
			"details": err.Error(),
		})
		return
	}

	err = ctrl.cartService.UpdateCartItem(userID, uint(id), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Sepet satırı bulunamadı",
			})
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Yetersiz stok",
			})
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Sepet güncellenemedi",
			})
		}
		return
	}

	log.Info("Cart item updated", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": id,
		"quantity":     req.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Sepet güncellendi",
	})
}

// RemoveFromCart removes item from cart
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Giriş yapmanız gerekiyor",
		})
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Geçersiz sepet satırı",
		})
		return
	}

	err = ctrl.cartService.RemoveFromCart(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Sepet satırı bulunamadı",
			})
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Ürün sepetten çıkarılamadı",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ürün sepetten çıkarıldı",
	})
}

// ClearCart removes all items from the user's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Giriş yapmanız gerekiyor",
		})
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Sepet temizlenemedi",
		})
		return
	}

	log.Info("Cart cleared", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Sepet temizlendi",
	})
}
