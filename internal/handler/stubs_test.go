package handler

import (
	"backoffice-service/internal/model"
	"backoffice-service/internal/service"
	"context"
	"time"
)

type stubBrandService struct {
	service.BrandService
	create func(service.BrandInput) (*model.Brand, error)
	get    func(uint) (*model.Brand, error)
	delete func(uint) error
}

func (s *stubBrandService) Create(_ context.Context, in service.BrandInput) (*model.Brand, error) {
	return s.create(in)
}

func (s *stubBrandService) Get(_ context.Context, id uint) (*model.Brand, error) {
	return s.get(id)
}

func (s *stubBrandService) Delete(_ context.Context, id uint) error {
	return s.delete(id)
}

type stubProductService struct {
	service.ProductService
	create func(service.ProductInput) (*model.Product, error)
	list   func(model.ProductFilter) ([]model.Product, error)
	search func(string) ([]model.Product, error)
}

func (s *stubProductService) Create(_ context.Context, in service.ProductInput) (*model.Product, error) {
	return s.create(in)
}

func (s *stubProductService) List(_ context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return s.list(filter)
}

func (s *stubProductService) Search(_ context.Context, q string) ([]model.Product, error) {
	return s.search(q)
}

type stubOrderService struct {
	service.OrderService
	get          func(uint) (*model.Order, error)
	create       func(service.OrderInput) (*model.Order, error)
	update       func(uint, service.OrderInput) (*model.Order, error)
	changeStatus func(uint, service.StatusInput) (*model.Order, error)
	list         func(model.OrderFilter) ([]model.Order, int64, error)
}

func (s *stubOrderService) Get(_ context.Context, id uint) (*model.Order, error) {
	return s.get(id)
}

func (s *stubOrderService) Create(_ context.Context, in service.OrderInput) (*model.Order, error) {
	return s.create(in)
}

func (s *stubOrderService) Update(_ context.Context, id uint, in service.OrderInput) (*model.Order, error) {
	return s.update(id, in)
}

func (s *stubOrderService) ChangeStatus(_ context.Context, id uint, in service.StatusInput) (*model.Order, error) {
	return s.changeStatus(id, in)
}

func (s *stubOrderService) List(_ context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	return s.list(filter)
}

type stubDashboardService struct {
	service.DashboardService
	byStatus func() (map[model.OrderStatus]int64, error)
	perMonth func(time.Time) (*service.MonthlySeries, error)
	badge    func() (*service.Badge, error)
}

func (s *stubDashboardService) OrdersByStatus(context.Context) (map[model.OrderStatus]int64, error) {
	return s.byStatus()
}

func (s *stubDashboardService) ProductsPerMonth(_ context.Context, now time.Time) (*service.MonthlySeries, error) {
	return s.perMonth(now)
}

func (s *stubDashboardService) NavigationBadge(context.Context) (*service.Badge, error) {
	return s.badge()
}
