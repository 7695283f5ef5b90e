package model

import (
	"fmt"
	"strings"
)

// OrderStatus is the canonical, locale-independent order lifecycle code
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusDeclined   OrderStatus = "declined"
)

// OrderStatuses lists every status in reporting order
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusDeclined,
}

// Valid reports whether s is one of the canonical codes
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusDeclined:
		return true
	}
	return false
}

// ParseOrderStatus accepts only the canonical codes, case-insensitively
func ParseOrderStatus(value string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
	return s, nil
}

// ProductType tells whether a product is shipped or downloaded
type ProductType string

const (
	ProductDownloadable ProductType = "downloadable"
	ProductDeliverable  ProductType = "deliverable"
)

// Valid reports whether t is a known product type
func (t ProductType) Valid() bool {
	return t == ProductDownloadable || t == ProductDeliverable
}
