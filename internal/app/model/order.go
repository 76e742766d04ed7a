package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // sipariş alındı
	OrderStatusConfirmed OrderStatus = "confirmed" // tedarikçi onayladı
	OrderStatusShipped   OrderStatus = "shipped"   // kargoya verildi
	OrderStatusDelivered OrderStatus = "delivered" // teslim edildi
	OrderStatusCancelled OrderStatus = "cancelled" // iptal edildi
)

type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	OrderNumber     string         `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	Status          OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	ShippingAddress string         `gorm:"type:text;not null" json:"shipping_address"`
	Note            string         `gorm:"type:text" json:"note"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	User  User        `gorm:"foreignKey:UserID" json:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem carries the price and name snapshots copied from the cart line at
// checkout time; catalog edits after checkout do not affect past orders.
type OrderItem struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	ProductID   uint    `gorm:"not null;index" json:"product_id"`
	VariantID   *uint   `gorm:"index" json:"variant_id,omitempty"`
	ProductName string  `gorm:"not null" json:"product_name"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
