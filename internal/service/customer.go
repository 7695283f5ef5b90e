package service

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"fmt"
	"strings"
)

// CustomerService manages customers
type CustomerService interface {
	List(ctx context.Context, filter model.CatalogFilter) ([]model.Customer, error)
	Get(ctx context.Context, id uint) (*model.Customer, error)
	Create(ctx context.Context, input CustomerInput) (*model.Customer, error)
	Update(ctx context.Context, id uint, input CustomerInput) (*model.Customer, error)
	Delete(ctx context.Context, id uint) error
}

type customerService struct {
	customers model.CustomerRepository
}

// NewCustomerService creates a CustomerService
func NewCustomerService(customers model.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) List(ctx context.Context, filter model.CatalogFilter) ([]model.Customer, error) {
	return s.customers.List(ctx, filter)
}

func (s *customerService) Get(ctx context.Context, id uint) (*model.Customer, error) {
	return s.customers.Find(ctx, id)
}

func (s *customerService) Create(ctx context.Context, input CustomerInput) (*model.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := checkUnique(ctx, s.customers, 0,
		uniqueField{field: "email", column: "email", value: email},
	); err != nil {
		return nil, err
	}

	customer := &model.Customer{}
	applyCustomer(customer, input, email)
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	prometheus.RecordCatalogOperation("customer", "create")
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id uint, input CustomerInput) (*model.Customer, error) {
	customer, err := s.customers.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := checkUnique(ctx, s.customers, id,
		uniqueField{field: "email", column: "email", value: email},
	); err != nil {
		return nil, err
	}

	applyCustomer(customer, input, email)
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	prometheus.RecordCatalogOperation("customer", "update")
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uint) error {
	hasOrders, err := s.customers.HasOrders(ctx, id)
	if err != nil {
		return err
	}
	if hasOrders {
		return fmt.Errorf("customer %d has orders: %w", id, model.ErrInUse)
	}

	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}

	prometheus.RecordCatalogOperation("customer", "delete")
	return nil
}

func applyCustomer(customer *model.Customer, input CustomerInput, email string) {
	customer.Name = input.Name
	customer.Email = email
	customer.Phone = input.Phone
	customer.DateOfBirth = input.DateOfBirth.timePtr()
	customer.City = input.City
	customer.ZipCode = input.ZipCode
	customer.Address = input.Address
}
