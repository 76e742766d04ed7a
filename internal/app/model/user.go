package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // kullanıcı rol tipi

const (
	RoleDealer   UserRole = "dealer"   // klinik / bayi hesabı
	RoleSupplier UserRole = "supplier" // tedarikçi hesabı
	RoleAdmin    UserRole = "admin"    // yönetici
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	CompanyName  string         `json:"company_name"` // firma/klinik adı
	TaxNumber    string         `json:"tax_number"`   // vergi numarası (B2B fatura için)
	Phone        string         `json:"phone"`
	Role         UserRole       `gorm:"type:varchar(20);default:'dealer'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	CartItems []CartItem `gorm:"foreignKey:UserID" json:"-"`
	Orders    []Order    `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
