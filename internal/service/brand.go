package service

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"fmt"
)

// BrandService manages brands
type BrandService interface {
	List(ctx context.Context, filter model.CatalogFilter) ([]model.Brand, error)
	Get(ctx context.Context, id uint) (*model.Brand, error)
	Create(ctx context.Context, input BrandInput) (*model.Brand, error)
	Update(ctx context.Context, id uint, input BrandInput) (*model.Brand, error)
	Delete(ctx context.Context, id uint) error
}

type brandService struct {
	brands model.BrandRepository
}

// NewBrandService creates a BrandService
func NewBrandService(brands model.BrandRepository) BrandService {
	return &brandService{brands: brands}
}

func (s *brandService) List(ctx context.Context, filter model.CatalogFilter) ([]model.Brand, error) {
	return s.brands.List(ctx, filter)
}

func (s *brandService) Get(ctx context.Context, id uint) (*model.Brand, error) {
	return s.brands.Find(ctx, id)
}

func (s *brandService) Create(ctx context.Context, input BrandInput) (*model.Brand, error) {
	slugValue, slugErr := deriveSlug(ctx, s.brands, "brand", input.Name)
	uniqueErr := checkUnique(ctx, s.brands, 0,
		uniqueField{field: "name", column: "name", value: input.Name},
		uniqueField{field: "url", column: "url", value: input.URL},
	)
	if err := joinFieldErrors(slugErr, uniqueErr); err != nil {
		return nil, err
	}

	brand := &model.Brand{
		Name:        input.Name,
		Slug:        slugValue,
		URL:         input.URL,
		Description: input.Description,
		IsVisible:   boolOr(input.IsVisible, true),
		PrimaryHex:  input.PrimaryHex,
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	prometheus.RecordCatalogOperation("brand", "create")
	return brand, nil
}

// Update never touches the slug, it stays the one derived on creation
func (s *brandService) Update(ctx context.Context, id uint, input BrandInput) (*model.Brand, error) {
	brand, err := s.brands.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkUnique(ctx, s.brands, id,
		uniqueField{field: "name", column: "name", value: input.Name},
		uniqueField{field: "url", column: "url", value: input.URL},
	); err != nil {
		return nil, err
	}

	brand.Name = input.Name
	brand.URL = input.URL
	brand.Description = input.Description
	brand.IsVisible = boolOr(input.IsVisible, brand.IsVisible)
	brand.PrimaryHex = input.PrimaryHex

	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	prometheus.RecordCatalogOperation("brand", "update")
	return brand, nil
}

func (s *brandService) Delete(ctx context.Context, id uint) error {
	inUse, err := s.brands.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("brand %d has products: %w", id, model.ErrInUse)
	}

	if err := s.brands.Delete(ctx, id); err != nil {
		return err
	}

	prometheus.RecordCatalogOperation("brand", "delete")
	return nil
}
