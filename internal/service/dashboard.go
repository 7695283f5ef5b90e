package service

import (
	"backoffice-service/internal/model"
	"backoffice-service/pkg/config"
	"backoffice-service/prometheus"
	"context"
	"fmt"
	"time"
)

const (
	BadgeWarning = "warning"
	BadgePrimary = "primary"
)

// Stats feeds the dashboard stat cards
type Stats struct {
	TotalCustomers int64 `json:"total_customers"`
	TotalProducts  int64 `json:"total_products"`
	PendingOrders  int64 `json:"pending_orders"`
}

// MonthlySeries holds two parallel sequences, one entry per month
type MonthlySeries struct {
	Year   int      `json:"year"`
	Labels []string `json:"labels"`
	Counts []int64  `json:"counts"`
}

// Badge is the navigation badge of the orders menu entry
type Badge struct {
	Count int64  `json:"count"`
	Color string `json:"color"`
}

// DashboardService computes the dashboard widgets
type DashboardService interface {
	Stats(ctx context.Context) (*Stats, error)
	OrdersByStatus(ctx context.Context) (map[model.OrderStatus]int64, error)
	// ProductsPerMonth counts products created in each month of now's year
	ProductsPerMonth(ctx context.Context, now time.Time) (*MonthlySeries, error)
	LatestOrders(ctx context.Context, status *model.OrderStatus, page int) ([]model.Order, int64, error)
	NavigationBadge(ctx context.Context) (*Badge, error)
}

type dashboardService struct {
	orders    model.OrderRepository
	products  model.ProductRepository
	customers model.CustomerRepository
	cfg       config.DashboardConfig
}

// NewDashboardService creates a DashboardService
func NewDashboardService(orders model.OrderRepository, products model.ProductRepository, customers model.CustomerRepository, cfg config.DashboardConfig) DashboardService {
	return &dashboardService{
		orders:    orders,
		products:  products,
		customers: customers,
		cfg:       cfg,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*Stats, error) {
	customers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	pending, err := s.orders.CountWithStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	return &Stats{
		TotalCustomers: customers,
		TotalProducts:  products,
		PendingOrders:  pending,
	}, nil
}

func (s *dashboardService) OrdersByStatus(ctx context.Context) (map[model.OrderStatus]int64, error) {
	rows, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	buckets := BucketStatuses(rows)
	prometheus.UpdateOrderStatusGauge(buckets)
	return buckets, nil
}

func (s *dashboardService) ProductsPerMonth(ctx context.Context, now time.Time) (*MonthlySeries, error) {
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	createdAt, err := s.products.CreatedBetween(ctx, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to load product creation dates: %w", err)
	}

	series := MonthlyPlacement(createdAt, now)
	return &series, nil
}

func (s *dashboardService) LatestOrders(ctx context.Context, status *model.OrderStatus, page int) ([]model.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.orders.List(ctx, model.OrderFilter{
		Status: status,
		Limit:  s.cfg.LatestOrdersLimit,
		Offset: (page - 1) * s.cfg.LatestOrdersLimit,
	})
}

func (s *dashboardService) NavigationBadge(ctx context.Context) (*Badge, error) {
	count, err := s.orders.CountWithStatus(ctx, model.StatusProcessing)
	if err != nil {
		return nil, fmt.Errorf("failed to count processing orders: %w", err)
	}

	color := BadgePrimary
	if count > int64(s.cfg.ProcessingBadgeThreshold) {
		color = BadgeWarning
	}
	return &Badge{Count: count, Color: color}, nil
}

// BucketStatuses returns a count for each of the four statuses, zero when no
// order has it. Rows with an unknown status are not counted.
func BucketStatuses(rows []model.StatusCount) map[model.OrderStatus]int64 {
	buckets := make(map[model.OrderStatus]int64, len(model.OrderStatuses))
	for _, status := range model.OrderStatuses {
		buckets[status] = 0
	}
	for _, row := range rows {
		if _, ok := buckets[row.Status]; ok {
			buckets[row.Status] += row.Count
		}
	}
	return buckets
}

// MonthlyPlacement counts the timestamps falling in each month of now's year,
// in now's location
func MonthlyPlacement(createdAt []time.Time, now time.Time) MonthlySeries {
	series := MonthlySeries{
		Year:   now.Year(),
		Labels: make([]string, 12),
		Counts: make([]int64, 12),
	}
	for m := time.January; m <= time.December; m++ {
		series.Labels[m-1] = m.String()[:3]
	}

	for _, t := range createdAt {
		t = t.In(now.Location())
		if t.Year() == series.Year {
			series.Counts[t.Month()-1]++
		}
	}
	return series
}
