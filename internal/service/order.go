package service

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"errors"
	"fmt"
)

// orderNumberAttempts bounds the retries on an order number collision
const orderNumberAttempts = 5

var errNumberExhausted = errors.New("could not allocate a free order number")

// OrderService manages orders and their items
type OrderService interface {
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error)
	Get(ctx context.Context, id uint) (*model.Order, error)
	Create(ctx context.Context, input OrderInput) (*model.Order, error)
	// Update replaces the header and items when input.Version matches the
	// stored version
	Update(ctx context.Context, id uint, input OrderInput) (*model.Order, error)
	ChangeStatus(ctx context.Context, id uint, input StatusInput) (*model.Order, error)
	Delete(ctx context.Context, id uint) error
}

type orderService struct {
	orders    model.OrderRepository
	customers model.CustomerRepository
	products  model.ProductRepository
	newNumber func() (string, error)
}

// NewOrderService creates an OrderService
func NewOrderService(orders model.OrderRepository, customers model.CustomerRepository, products model.ProductRepository) OrderService {
	return &orderService{
		orders:    orders,
		customers: customers,
		products:  products,
		newNumber: model.NewOrderNumber,
	}
}

func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	return s.orders.List(ctx, filter)
}

func (s *orderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	return s.orders.Find(ctx, id)
}

func (s *orderService) Create(ctx context.Context, input OrderInput) (*model.Order, error) {
	customerErr := s.checkCustomer(ctx, input.CustomerID)
	items, itemsErr := s.buildItems(ctx, nil, input.Items)
	if err := joinFieldErrors(customerErr, itemsErr); err != nil {
		return nil, err
	}

	number, err := s.allocateNumber(ctx)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.StatusPending
	}

	order := &model.Order{
		Number:        number,
		CustomerID:    input.CustomerID,
		Status:        status,
		ShippingPrice: decimalOf(input.ShippingPrice),
		Notes:         input.Notes,
		Version:       1,
		Items:         items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	prometheus.RecordOrderCreated()
	return s.orders.Find(ctx, order.ID)
}

func (s *orderService) Update(ctx context.Context, id uint, input OrderInput) (*model.Order, error) {
	order, err := s.orders.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Version != order.Version {
		prometheus.RecordOrderConflict()
		return nil, fmt.Errorf("order %d at version %d, got %d: %w", id, order.Version, input.Version, model.ErrOptimisticLock)
	}

	customerErr := s.checkCustomer(ctx, input.CustomerID)
	items, itemsErr := s.buildItems(ctx, order.Items, input.Items)
	if err := joinFieldErrors(customerErr, itemsErr); err != nil {
		return nil, err
	}

	order.CustomerID = input.CustomerID
	order.Customer = nil
	if input.Status != "" {
		order.Status = input.Status
	}
	order.ShippingPrice = decimalOf(input.ShippingPrice)
	order.Notes = input.Notes
	order.Items = items

	return s.save(ctx, order, input.Version)
}

func (s *orderService) ChangeStatus(ctx context.Context, id uint, input StatusInput) (*model.Order, error) {
	order, err := s.orders.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Version != order.Version {
		prometheus.RecordOrderConflict()
		return nil, fmt.Errorf("order %d at version %d, got %d: %w", id, order.Version, input.Version, model.ErrOptimisticLock)
	}
	if !input.Status.Valid() {
		return nil, model.NewFieldError("status", model.ErrInvalidStatus)
	}

	order.Status = input.Status
	return s.save(ctx, order, input.Version)
}

func (s *orderService) Delete(ctx context.Context, id uint) error {
	return s.orders.Delete(ctx, id)
}

func (s *orderService) save(ctx context.Context, order *model.Order, version int) (*model.Order, error) {
	if err := s.orders.Update(ctx, order, version); err != nil {
		if errors.Is(err, model.ErrOptimisticLock) {
			prometheus.RecordOrderConflict()
		}
		return nil, fmt.Errorf("failed to update order %d: %w", order.ID, err)
	}
	return s.orders.Find(ctx, order.ID)
}

func (s *orderService) checkCustomer(ctx context.Context, customerID uint) error {
	if _, err := s.customers.Find(ctx, customerID); err != nil {
		return relation("customer_id", err)
	}
	return nil
}

// buildItems turns the submitted lines into order items. Lines that keep an
// existing item and its product keep the captured unit price; new lines and
// lines whose product changed take the product's current price.
func (s *orderService) buildItems(ctx context.Context, current []model.OrderItem, lines []OrderItemInput) ([]model.OrderItem, error) {
	existing := make(map[uint]model.OrderItem, len(current))
	for _, item := range current {
		existing[item.ID] = item
	}

	productIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}
	products, err := s.products.FindMany(ctx, uniqueIDs(productIDs))
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var errs model.FieldErrors
	seen := make(map[uint]bool, len(lines))
	items := make([]model.OrderItem, 0, len(lines))
	for i, line := range lines {
		if line.ID != 0 {
			if seen[line.ID] {
				errs = append(errs, model.NewFieldError(fmt.Sprintf("items.%d.id", i), model.ErrRepeatedItem))
				continue
			}
			seen[line.ID] = true
		}

		product, ok := byID[line.ProductID]
		if !ok {
			errs = append(errs, model.NewFieldError(fmt.Sprintf("items.%d.product_id", i), model.ErrRelationNotFound))
			continue
		}

		item := model.OrderItem{
			ProductID: line.ProductID,
			Position:  i,
			Quantity:  intOf(line.Quantity),
			UnitPrice: product.Price,
		}
		if line.ID != 0 {
			prev, ok := existing[line.ID]
			if !ok {
				errs = append(errs, model.NewFieldError(fmt.Sprintf("items.%d.id", i), model.ErrRelationNotFound))
				continue
			}
			item.ID = prev.ID
			item.OrderID = prev.OrderID
			item.CreatedAt = prev.CreatedAt
			if prev.ProductID == line.ProductID {
				item.UnitPrice = prev.UnitPrice
			}
		}
		items = append(items, item)
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *orderService) allocateNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := s.newNumber()
		if err != nil {
			return "", fmt.Errorf("failed to generate order number: %w", err)
		}
		taken, err := s.orders.NumberTaken(ctx, number)
		if err != nil {
			return "", fmt.Errorf("failed to check order number: %w", err)
		}
		if !taken {
			return number, nil
		}
	}
	return "", errNumberExhausted
}
