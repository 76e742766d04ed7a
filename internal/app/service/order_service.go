package service

import (
	"errors"
	"fmt"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrCartEmpty               = errors.New("cart is empty")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// OrderNotifier receives order lifecycle events. The websocket back-office
// feed implements it; a no-op implementation is fine in tests.
type OrderNotifier interface {
	OrderCreated(order *model.Order)
	OrderStatusChanged(order *model.Order)
}

type OrderService interface {
	// Checkout converts the user's cart into an order atomically: order and
	// items are written, product stock decremented, and the cart cleared in
	// one transaction.
	Checkout(userID uint, shippingAddress, note string) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	ListOrders(status model.OrderStatus, page, pageSize int) ([]model.Order, int64, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	notifier  OrderNotifier
	db        *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	notifier OrderNotifier,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		notifier:  notifier,
		db:        db,
	}
}

// sipariş numarası: DM-önekli kısa UUID
func generateOrderNumber() string {
	return fmt.Sprintf("DM-%s", uuid.New().String()[:8])
}

func (s *orderService) Checkout(userID uint, shippingAddress, note string) (*model.Order, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to load cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Checkout rejected: empty cart", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCartEmpty
	}

	order := &model.Order{
		OrderNumber:     generateOrderNumber(),
		UserID:          userID,
		Status:          model.OrderStatusPending,
		ShippingAddress: shippingAddress,
		Note:            note,
	}

	for _, item := range cartItems {
		if item.Product.StockQuantity < item.Quantity {
			logger.Warn("Checkout rejected: insufficient stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": item.ProductID,
				"requested":  item.Quantity,
				"available":  item.Product.StockQuantity,
			})
			return nil, ErrInsufficientStock
		}

		order.Items = append(order.Items, model.OrderItem{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
		order.TotalAmount += item.Subtotal()
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.CreateWithTx(tx, order); err != nil {
			return err
		}

		for _, item := range cartItems {
			result := tx.Model(&model.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// başka bir sipariş stoğu bu arada tüketti
				return ErrInsufficientStock
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		logger.Error("Checkout transaction failed", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total":        order.TotalAmount,
		"item_count":   len(order.Items),
	})

	if s.notifier != nil {
		s.notifier.OrderCreated(order)
	}

	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}

	return order, nil
}

func (s *orderService) ListOrders(status model.OrderStatus, page, pageSize int) ([]model.Order, int64, error) {
	return s.orderRepo.FindAll(status, page, pageSize)
}

// allowedTransitions: bir durumdan geçilebilecek durumlar
var allowedTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed: {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:   {model.OrderStatusDelivered},
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	allowed := false
	for _, next := range allowedTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		logger.Warn("Order status transition rejected", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return nil, ErrInvalidStatusTransition
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if s.notifier != nil {
		s.notifier.OrderStatusChanged(order)
	}

	return order, nil
}
