package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	SKU           string         `gorm:"uniqueIndex;not null" json:"sku"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null" json:"price"` // KDV hariç liste fiyatı (TRY)
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	BrandID       *uint          `gorm:"index" json:"brand_id,omitempty"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"` // ürün görsel galerisi
	IsActive      bool           `json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`

	CartItems  []CartItem  `gorm:"foreignKey:ProductID" json:"-"`
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
