package repository

import (
	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cartItem *model.CartItem) error
	FindByUserID(userID uint) ([]model.CartItem, error)
	FindByID(id uint) (*model.CartItem, error)
	// FindByUserProductVariant locates the mergeable line for the
	// (user, product, variant) triple; variantID nil matches lines without a
	// variant.
	FindByUserProductVariant(userID, productID uint, variantID *uint) (*model.CartItem, error)
	// SumQuantityByUserID is the single source of the cart item count.
	SumQuantityByUserID(userID uint) (int, error)
	Update(cartItem *model.CartItem) error
	Delete(id uint) error
	DeleteByUserID(userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cartItem *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"user_id":    cartItem.UserID,
		"product_id": cartItem.ProductID,
		"variant_id": cartItem.VariantID,
		"quantity":   cartItem.Quantity,
	})

	if err := r.db.Create(cartItem).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id":    cartItem.UserID,
			"product_id": cartItem.ProductID,
		})
		return err
	}

	return nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	var cartItems []model.CartItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Product.Brand").
		Preload("Variant").
		Order("created_at ASC").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return cartItems, nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	var cartItem model.CartItem
	err := r.db.Preload("Product").Preload("Variant").First(&cartItem, id).Error
	if err != nil {
		return nil, err
	}
	return &cartItem, nil
}

func (r *cartRepository) FindByUserProductVariant(userID, productID uint, variantID *uint) (*model.CartItem, error) {
	query := r.db.Where("user_id = ? AND product_id = ?", userID, productID)
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	var cartItem model.CartItem
	if err := query.First(&cartItem).Error; err != nil {
		return nil, err
	}

	return &cartItem, nil
}

func (r *cartRepository) SumQuantityByUserID(userID uint) (int, error) {
	var count int64
	err := r.db.Model(&model.CartItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error
	if err != nil {
		logger.Error("Failed to sum cart quantities in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}

	return int(count), nil
}

func (r *cartRepository) Update(cartItem *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"quantity":     cartItem.Quantity,
	})

	if err := r.db.Save(cartItem).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": cartItem.ID,
		})
		return err
	}

	return nil
}

func (r *cartRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteByUserID(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by user ID from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
