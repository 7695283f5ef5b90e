package service

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"errors"
	"fmt"
	"time"
)

// ProductService manages products
type ProductService interface {
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, input ProductInput) (*model.Product, error)
	Update(ctx context.Context, id uint, input ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	products   model.ProductRepository
	brands     model.BrandRepository
	categories model.CategoryRepository
	now        func() time.Time
}

// NewProductService creates a ProductService
func NewProductService(products model.ProductRepository, brands model.BrandRepository, categories model.CategoryRepository) ProductService {
	return &productService{
		products:   products,
		brands:     brands,
		categories: categories,
		now:        time.Now,
	}
}

func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return s.products.List(ctx, filter)
}

// Search matches name, slug and description
func (s *productService) Search(ctx context.Context, query string) ([]model.Product, error) {
	if query == "" {
		return []model.Product{}, nil
	}
	return s.products.List(ctx, model.ProductFilter{Search: query})
}

func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	return s.products.Find(ctx, id)
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*model.Product, error) {
	slugValue, slugErr := deriveSlug(ctx, s.products, "product", input.Name)
	uniqueErr := checkUnique(ctx, s.products, 0,
		uniqueField{field: "name", column: "name", value: input.Name},
	)
	categories, relErr := s.resolveRelations(ctx, input)
	if err := joinFieldErrors(slugErr, uniqueErr, relErr); err != nil {
		return nil, err
	}

	publishedAt := input.PublishedAt.timePtr()
	if publishedAt == nil {
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		publishedAt = &today
	}

	product := &model.Product{
		BrandID:     input.BrandID,
		Name:        input.Name,
		Slug:        slugValue,
		Description: input.Description,
		SKU:         input.SKU,
		Price:       decimalOf(input.Price),
		Quantity:    input.Quantity,
		Type:        input.Type,
		IsVisible:   boolOr(input.IsVisible, true),
		IsFeatured:  input.IsFeatured,
		PublishedAt: publishedAt,
		Image:       input.Image,
		Categories:  categories,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	prometheus.RecordCatalogOperation("product", "create")
	return product, nil
}

// Update keeps the slug derived on creation
func (s *productService) Update(ctx context.Context, id uint, input ProductInput) (*model.Product, error) {
	product, err := s.products.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	uniqueErr := checkUnique(ctx, s.products, id,
		uniqueField{field: "name", column: "name", value: input.Name},
	)
	categories, relErr := s.resolveRelations(ctx, input)
	if err := joinFieldErrors(uniqueErr, relErr); err != nil {
		return nil, err
	}

	product.BrandID = input.BrandID
	product.Brand = nil
	product.Name = input.Name
	product.Description = input.Description
	product.SKU = input.SKU
	product.Price = decimalOf(input.Price)
	product.Quantity = input.Quantity
	product.Type = input.Type
	product.IsVisible = boolOr(input.IsVisible, product.IsVisible)
	product.IsFeatured = input.IsFeatured
	if publishedAt := input.PublishedAt.timePtr(); publishedAt != nil {
		product.PublishedAt = publishedAt
	}
	product.Image = input.Image
	product.Categories = categories

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	prometheus.RecordCatalogOperation("product", "update")
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	prometheus.RecordCatalogOperation("product", "delete")
	return nil
}

// resolveRelations makes sure the brand and every category exist
func (s *productService) resolveRelations(ctx context.Context, input ProductInput) ([]model.Category, error) {
	var errs model.FieldErrors

	if _, err := s.brands.Find(ctx, input.BrandID); err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		errs = append(errs, model.NewFieldError("brand_id", model.ErrRelationNotFound))
	}

	ids := uniqueIDs(input.CategoryIDs)
	categories, err := s.categories.FindMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		errs = append(errs, model.NewFieldError("category_ids", model.ErrRelationNotFound))
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return categories, nil
}
