package handler

import (
	"backoffice-service/internal/model"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// OrderItemResponse is an order line with its derived total
type OrderItemResponse struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderResponse is an order with its computed total and localised status
type OrderResponse struct {
	ID            uint                `json:"id"`
	Number        string              `json:"number"`
	CustomerID    uint                `json:"customer_id"`
	CustomerName  string              `json:"customer_name,omitempty"`
	Status        model.OrderStatus   `json:"status"`
	StatusLabel   string              `json:"status_label"`
	ShippingPrice decimal.Decimal     `json:"shipping_price"`
	Total         decimal.Decimal     `json:"total"`
	Notes         string              `json:"notes"`
	Version       int                 `json:"version"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func newOrderResponse(order *model.Order, lang language.Tag) OrderResponse {
	resp := OrderResponse{
		ID:            order.ID,
		Number:        order.Number,
		CustomerID:    order.CustomerID,
		Status:        order.Status,
		StatusLabel:   statusLabel(lang, order.Status),
		ShippingPrice: order.ShippingPrice,
		Total:         order.Total(),
		Notes:         order.Notes,
		Version:       order.Version,
		Items:         make([]OrderItemResponse, 0, len(order.Items)),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
	if order.Customer != nil {
		resp.CustomerName = order.Customer.Name
	}
	for _, item := range order.Items {
		line := OrderItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice(),
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}

func newOrderResponses(orders []model.Order, lang language.Tag) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderResponse(&orders[i], lang))
	}
	return out
}

// SearchResult is one hit of the global product search
type SearchResult struct {
	ID      uint              `json:"id"`
	Title   string            `json:"title"`
	Slug    string            `json:"slug"`
	Details map[string]string `json:"details"`
}
