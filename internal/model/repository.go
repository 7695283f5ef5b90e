package model

import (
	"context"
	"time"
)

// Repository is the storage contract shared by the catalog entities
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	Find(ctx context.Context, id uint) (*T, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	// Taken reports whether another record (soft-deleted ones included) already
	// holds value in column
	Taken(ctx context.Context, column, value string, exceptID uint) (bool, error)
}

// CatalogFilter narrows brand, category and customer listings
type CatalogFilter struct {
	Visible *bool
	Search  string
}

// ProductFilter narrows product listings
type ProductFilter struct {
	Visible    *bool
	BrandID    *uint
	CategoryID *uint
	Search     string
}

// OrderFilter narrows order listings; a zero Limit means no limit
type OrderFilter struct {
	Status     *OrderStatus
	CustomerID *uint
	Limit      int
	Offset     int
}

type BrandRepository interface {
	Repository[Brand]
	List(ctx context.Context, filter CatalogFilter) ([]Brand, error)
	HasProducts(ctx context.Context, id uint) (bool, error)
}

type CategoryRepository interface {
	Repository[Category]
	List(ctx context.Context, filter CatalogFilter) ([]Category, error)
	FindMany(ctx context.Context, ids []uint) ([]Category, error)
	HasProducts(ctx context.Context, id uint) (bool, error)
	HasChildren(ctx context.Context, id uint) (bool, error)
}

type ProductRepository interface {
	Repository[Product]
	List(ctx context.Context, filter ProductFilter) ([]Product, error)
	FindMany(ctx context.Context, ids []uint) ([]Product, error)
	// CreatedBetween returns the creation timestamps of products created in [from, to)
	CreatedBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

type CustomerRepository interface {
	Repository[Customer]
	List(ctx context.Context, filter CatalogFilter) ([]Customer, error)
	HasOrders(ctx context.Context, id uint) (bool, error)
}

type OrderRepository interface {
	// Create stores the order together with its items
	Create(ctx context.Context, order *Order) error
	// Find loads the order with its customer and items (and each item's product)
	Find(ctx context.Context, id uint) (*Order, error)
	// List returns the matching orders newest first plus the unpaginated total
	List(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	// Update persists header and items when the stored version still equals
	// expectedVersion; the order's Version is bumped on success
	Update(ctx context.Context, order *Order, expectedVersion int) error
	Delete(ctx context.Context, id uint) error
	NumberTaken(ctx context.Context, number string) (bool, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountWithStatus(ctx context.Context, status OrderStatus) (int64, error)
}
