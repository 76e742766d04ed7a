package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductVariant struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ProductID       uint           `gorm:"index;not null" json:"product_id"`
	Name            string         `gorm:"not null" json:"name"`  // varyant grubu (ör. "Renk")
	Value           string         `gorm:"not null" json:"value"` // varyant değeri (ör. "A2")
	SKU             string         `json:"sku"`
	AdditionalPrice float64        `gorm:"default:0" json:"additional_price"` // liste fiyatına eklenen fark
	StockQuantity   int            `gorm:"default:0" json:"stock_quantity"`
	IsDefault       bool           `json:"is_default"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
