package model

import (
	"time"

	"gorm.io/gorm"
)

type Brand struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	LogoURL   string         `json:"logo_url"`
	Country   string         `json:"country"` // menşei ülke
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:BrandID" json:"-"`
}

func (Brand) TableName() string {
	return "brands"
}
