package model

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one line of a dealer's cart. UnitPrice is snapshotted when the
// line is created so later catalog price changes do not move an open cart.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	VariantID *uint          `gorm:"index" json:"variant_id,omitempty"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	UnitPrice float64        `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User    User            `gorm:"foreignKey:UserID" json:"-"`
	Product Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal returns the line total (snapshot price times quantity).
func (i *CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
