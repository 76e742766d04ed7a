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

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	Note            string `json:"note"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// Checkout converts the cart into an order
// POST /api/v1/orders/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Teslimat adresi zorunludur")
		return
	}

	order, err := ctrl.orderService.Checkout(userID, req.ShippingAddress, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Sepetiniz boş")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.BadRequest(c, apperrors.CartInsufficientStock, "Sepetinizdeki bazı ürünler için yeterli stok yok")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "Sipariş oluşturulamadı")
		}
		return
	}

	log.Info("Order created", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// GetUserOrders lists the authenticated user's orders
// GET /api/v1/orders
func (ctrl *OrderController) GetUserOrders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		apperrors.InternalError(c, "Siparişler yüklenemedi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
	})
}

// GetOrder returns one of the user's orders with items
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz sipariş numarası")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Sipariş bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// ListOrders lists all orders, optionally filtered by status (admin/supplier)
// GET /api/v1/admin/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	status := model.OrderStatus(c.Query("status"))

	orders, total, err := ctrl.orderService.ListOrders(status, page, pageSize)
	if err != nil {
		apperrors.InternalError(c, "Siparişler yüklenemedi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
	})
}

// UpdateOrderStatus moves an order along the fulfillment flow (admin/supplier)
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz sipariş numarası")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Sipariş bulunamadı")
		case errors.Is(err, service.ErrInvalidStatusTransition):
			apperrors.BadRequest(c, apperrors.OrderInvalidTransition, "Bu durum geçişine izin verilmiyor")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
				"status":   req.Status,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "order")
		}
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}
