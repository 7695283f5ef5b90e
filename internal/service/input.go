package service

import (
	"backoffice-service/internal/model"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BrandInput is the brand form
type BrandInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	URL         string `json:"url" validate:"required,url,max=255"`
	Description string `json:"description"`
	IsVisible   *bool  `json:"is_visible"`
	PrimaryHex  string `json:"primary_hex" validate:"omitempty,hexcolor"`
}

// CategoryInput is the category form
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	IsVisible   *bool  `json:"is_visible"`
	ParentID    *uint  `json:"parent_id"`
}

// ProductInput is the product form
type ProductInput struct {
	Name        string            `json:"name" validate:"required,max=255"`
	Description string            `json:"description"`
	SKU         string            `json:"sku" validate:"max=100"`
	Price       *decimal.Decimal  `json:"price" validate:"required,price"`
	Quantity    int               `json:"quantity" validate:"min=0,max=100"`
	Type        model.ProductType `json:"type" validate:"required,product_type"`
	IsVisible   *bool             `json:"is_visible"`
	IsFeatured  bool              `json:"is_featured"`
	PublishedAt *Date             `json:"published_at"`
	Image       string            `json:"image" validate:"max=255"`
	BrandID     uint              `json:"brand_id" validate:"required"`
	CategoryIDs []uint            `json:"category_ids"`
}

// CustomerInput is the customer form
type CustomerInput struct {
	Name        string `json:"name" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Phone       string `json:"phone" validate:"max=50"`
	DateOfBirth *Date  `json:"date_of_birth"`
	City        string `json:"city" validate:"required,max=100"`
	ZipCode     string `json:"zip_code" validate:"required,max=20"`
	Address     string `json:"address" validate:"required,max=255"`
}

// OrderItemInput is one line of the order form; ID is set for lines that
// already exist on the order
type OrderItemInput struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  *int `json:"quantity" validate:"required,min=0"`
}

// OrderInput is the order form; Version is the version the editor loaded and
// is required when updating
type OrderInput struct {
	CustomerID    uint              `json:"customer_id" validate:"required"`
	Status        model.OrderStatus `json:"status" validate:"omitempty,order_status"`
	ShippingPrice *decimal.Decimal  `json:"shipping_price" validate:"required,money"`
	Notes         string            `json:"notes"`
	Items         []OrderItemInput  `json:"items" validate:"dive"`
	Version       int               `json:"version" validate:"min=0"`
}

// StatusInput changes only the status of an order
type StatusInput struct {
	Status  model.OrderStatus `json:"status" validate:"required,order_status"`
	Version int               `json:"version" validate:"required,min=1"`
}

// Date is a calendar day that accepts both "2006-01-02" and RFC 3339 in JSON
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return err
	}
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// timePtr converts an optional Date into the model representation
func (d *Date) timePtr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// Money and quantity fields are pointers so a missing key fails "required";
// the helpers read them once validation has passed.
func decimalOf(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}

func intOf(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
