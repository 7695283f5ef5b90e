package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is the aggregate root of a customer purchase
type Order struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	Number        string          `json:"number" gorm:"type:varchar(32);uniqueIndex;not null"`
	CustomerID    uint            `json:"customer_id" gorm:"index;not null"`
	Customer      *Customer       `json:"customer,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);index;not null"`
	ShippingPrice decimal.Decimal `json:"shipping_price" gorm:"type:decimal(10,2);not null;default:0"`
	Notes         string          `json:"notes" gorm:"type:text"`
	Version       int             `json:"version" gorm:"not null;default:1"`
	Items         []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// OrderItem is a single product line; UnitPrice is the price captured when the
// line was added and is never refreshed from the product
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	OrderID   uint            `json:"order_id" gorm:"index;not null"`
	ProductID uint            `json:"product_id" gorm:"index;not null"`
	Product   *Product        `json:"product,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	Position  int             `json:"position" gorm:"not null;default:0"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TotalPrice is quantity x unit price
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total is the items subtotal plus shipping, always derived from the current items
func (o *Order) Total() decimal.Decimal {
	return CalculateTotal(o.Items, o.ShippingPrice)
}

// CalculateTotal returns shipping + sum(quantity x unit price). Inputs are
// expected to be validated as non-negative before reaching here.
func CalculateTotal(items []OrderItem, shipping decimal.Decimal) decimal.Decimal {
	total := shipping
	for _, item := range items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// BeforeCreate assigns an order number when the caller did not
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Number == "" {
		number, err := NewOrderNumber()
		if err != nil {
			return err
		}
		o.Number = number
	}
	return nil
}

// StatusCount is one row of the orders-per-status grouping
type StatusCount struct {
	Status OrderStatus
	Count  int64
}
