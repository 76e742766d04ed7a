package service

import (
	"errors"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrProductInactive   = errors.New("product is not available")
	ErrInvalidVariant    = errors.New("variant does not belong to product")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// CartSummary is the derived view of a user's cart. ItemCount and Total are
// computed here and nowhere else, so UI consumers cannot drift.
type CartSummary struct {
	Items     []model.CartItem `json:"items"`
	ItemCount int              `json:"item_count"`
	Total     float64          `json:"total"`
}

type CartService interface {
	GetUserCart(userID uint) (*CartSummary, error)
	// ItemCount returns the quantity sum across all lines for badge rendering.
	ItemCount(userID uint) (int, error)
	AddToCart(userID, productID uint, variantID *uint, quantity int) error
	UpdateCartItem(userID, cartItemID uint, quantity int) error
	RemoveFromCart(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func (s *cartService) GetUserCart(userID uint) (*CartSummary, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	summary := &CartSummary{Items: items}
	for i := range items {
		summary.ItemCount += items[i].Quantity
		summary.Total += items[i].Subtotal()
	}

	return summary, nil
}

func (s *cartService) ItemCount(userID uint) (int, error) {
	return s.cartRepo.SumQuantityByUserID(userID)
}

// AddToCart merges into the existing line for the same (product, variant)
// pair, incrementing quantity; otherwise it creates a new line with the unit
// price snapshotted at call time. On a failed write nothing changes.
func (s *cartService) AddToCart(userID, productID uint, variantID *uint, quantity int) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"variant_id": variantID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		return ErrInsufficientStock
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	if !product.IsActive {
		logger.Warn("Cannot add to cart: product inactive", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return ErrProductInactive
	}

	var variant *model.ProductVariant
	if variantID != nil {
		v, err := s.variantRepo.FindByID(*variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidVariant
			}
			logger.Error("Failed to fetch product variant", err, map[string]interface{}{
				"variant_id": *variantID,
			})
			return err
		}
		if v.ProductID != productID {
			logger.Warn("Variant does not belong to product", map[string]interface{}{
				"product_id": productID,
				"variant_id": *variantID,
			})
			return ErrInvalidVariant
		}
		variant = v
	}

	existingItem, err := s.cartRepo.FindByUserProductVariant(userID, productID, variantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	requestedQuantity := quantity
	if existingItem != nil {
		requestedQuantity = existingItem.Quantity + quantity
	}

	if err := checkStock(product, variant, requestedQuantity); err != nil {
		logger.Warn("Cannot add to cart: insufficient stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"requested":  requestedQuantity,
		})
		return err
	}

	if existingItem != nil {
		logger.Debug("Merging into existing cart line", map[string]interface{}{
			"cart_item_id": existingItem.ID,
			"old_qty":      existingItem.Quantity,
			"new_qty":      requestedQuantity,
		})
		existingItem.Quantity = requestedQuantity
		if err := s.cartRepo.Update(existingItem); err != nil {
			return err
		}
		return nil
	}

	// Fiyat bu anda sabitlenir; sonraki katalog değişiklikleri satırı etkilemez
	unitPrice := product.Price
	if variant != nil {
		unitPrice += variant.AdditionalPrice
	}

	cartItem := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}

	if err := s.cartRepo.Create(cartItem); err != nil {
		return err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"unit_price":   cartItem.UnitPrice,
	})
	return nil
}

// UpdateCartItem sets the line quantity. A quantity of zero or less removes
// the line: taking out the last unit takes out the line item.
func (s *cartService) UpdateCartItem(userID, cartItemID uint, quantity int) error {
	logger.Info("Updating cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})

	cartItem, err := s.findOwnedItem(userID, cartItemID)
	if err != nil {
		return err
	}

	if quantity < 1 {
		return s.cartRepo.Delete(cartItem.ID)
	}

	product, err := s.productRepo.FindByID(cartItem.ProductID)
	if err != nil {
		logger.Error("Failed to fetch product for stock check", err, map[string]interface{}{
			"product_id": cartItem.ProductID,
		})
		return err
	}

	var variant *model.ProductVariant
	if cartItem.VariantID != nil {
		variant, err = s.variantRepo.FindByID(*cartItem.VariantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidVariant
			}
			return err
		}
	}

	if err := checkStock(product, variant, quantity); err != nil {
		logger.Warn("Cannot update cart item: insufficient stock", map[string]interface{}{
			"cart_item_id": cartItemID,
			"requested":    quantity,
		})
		return err
	}

	cartItem.Quantity = quantity
	if err := s.cartRepo.Update(cartItem); err != nil {
		return err
	}

	return nil
}

func (s *cartService) RemoveFromCart(userID, cartItemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	cartItem, err := s.findOwnedItem(userID, cartItemID)
	if err != nil {
		return err
	}

	return s.cartRepo.Delete(cartItem.ID)
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})

	return s.cartRepo.DeleteByUserID(userID)
}

// findOwnedItem loads the cart line and hides other users' lines behind
// ErrCartItemNotFound.
func (s *cartService) findOwnedItem(userID, cartItemID uint) (*model.CartItem, error) {
	cartItem, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, err
	}

	if cartItem.UserID != userID {
		logger.Warn("Cart item access denied: ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
			"owner_id":     cartItem.UserID,
		})
		return nil, ErrCartItemNotFound
	}

	return cartItem, nil
}

func checkStock(product *model.Product, variant *model.ProductVariant, requested int) error {
	if product.StockQuantity < requested {
		return ErrInsufficientStock
	}
	if variant != nil && variant.StockQuantity < requested {
		return ErrInsufficientStock
	}
	return nil
}
