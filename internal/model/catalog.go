package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Brand represents a product brand
type Brand struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Slug        string         `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	URL         string         `json:"url" gorm:"column:url;type:varchar(255);uniqueIndex;not null"`
	Description string         `json:"description" gorm:"type:text"`
	IsVisible   bool           `json:"is_visible" gorm:"not null"`
	PrimaryHex  string         `json:"primary_hex" gorm:"type:varchar(7)"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Category groups products; a category may hang under one parent
type Category struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Slug        string         `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string         `json:"description" gorm:"type:text"`
	IsVisible   bool           `json:"is_visible" gorm:"not null"`
	ParentID    *uint          `json:"parent_id" gorm:"index"`
	Parent      *Category      `json:"parent,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Product represents the product master data
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	BrandID     uint            `json:"brand_id" gorm:"index;not null"`
	Brand       *Brand          `json:"brand,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	Name        string          `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Slug        string          `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string          `json:"description" gorm:"type:text"`
	SKU         string          `json:"sku" gorm:"type:varchar(100);index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	Type        ProductType     `json:"type" gorm:"type:varchar(20);not null"`
	IsVisible   bool            `json:"is_visible" gorm:"not null"`
	IsFeatured  bool            `json:"is_featured" gorm:"not null"`
	PublishedAt *time.Time      `json:"published_at" gorm:"type:date"`
	Image       string          `json:"image" gorm:"type:varchar(255)"`
	Categories  []Category      `json:"categories,omitempty" gorm:"many2many:category_product;"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// Customer represents a store customer
type Customer struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(50);not null"`
	Email       string         `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone       string         `json:"phone" gorm:"type:varchar(50)"`
	DateOfBirth *time.Time     `json:"date_of_birth" gorm:"type:date"`
	City        string         `json:"city" gorm:"type:varchar(100);not null"`
	ZipCode     string         `json:"zip_code" gorm:"type:varchar(20);not null"`
	Address     string         `json:"address" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
