package service

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"fmt"
)

// CategoryService manages categories and their single level of nesting
type CategoryService interface {
	List(ctx context.Context, filter model.CatalogFilter) ([]model.Category, error)
	Get(ctx context.Context, id uint) (*model.Category, error)
	Create(ctx context.Context, input CategoryInput) (*model.Category, error)
	Update(ctx context.Context, id uint, input CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	categories model.CategoryRepository
}

// NewCategoryService creates a CategoryService
func NewCategoryService(categories model.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context, filter model.CatalogFilter) ([]model.Category, error) {
	return s.categories.List(ctx, filter)
}

func (s *categoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	return s.categories.Find(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	slugValue, slugErr := deriveSlug(ctx, s.categories, "category", input.Name)
	uniqueErr := checkUnique(ctx, s.categories, 0,
		uniqueField{field: "name", column: "name", value: input.Name},
	)
	parentErr := s.checkParent(ctx, 0, input.ParentID)
	if err := joinFieldErrors(slugErr, uniqueErr, parentErr); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        input.Name,
		Slug:        slugValue,
		Description: input.Description,
		IsVisible:   boolOr(input.IsVisible, true),
		ParentID:    input.ParentID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	prometheus.RecordCatalogOperation("category", "create")
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, input CategoryInput) (*model.Category, error) {
	category, err := s.categories.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	uniqueErr := checkUnique(ctx, s.categories, id,
		uniqueField{field: "name", column: "name", value: input.Name},
	)
	parentErr := s.checkParent(ctx, id, input.ParentID)
	if err := joinFieldErrors(uniqueErr, parentErr); err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	category.IsVisible = boolOr(input.IsVisible, category.IsVisible)
	category.ParentID = input.ParentID
	category.Parent = nil

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	prometheus.RecordCatalogOperation("category", "update")
	return category, nil
}

// checkParent allows only top level categories as parents, and only for
// categories that have no children of their own
func (s *categoryService) checkParent(ctx context.Context, id uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if *parentID == id {
		return model.NewFieldError("parent_id", model.ErrInvalidParent)
	}

	parent, err := s.categories.Find(ctx, *parentID)
	if err != nil {
		return relation("parent_id", err)
	}
	if parent.ParentID != nil {
		return model.NewFieldError("parent_id", model.ErrInvalidParent)
	}

	if id != 0 {
		hasChildren, err := s.categories.HasChildren(ctx, id)
		if err != nil {
			return err
		}
		if hasChildren {
			return model.NewFieldError("parent_id", model.ErrInvalidParent)
		}
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	hasProducts, err := s.categories.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	hasChildren, err := s.categories.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts || hasChildren {
		return fmt.Errorf("category %d: %w", id, model.ErrInUse)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	prometheus.RecordCatalogOperation("category", "delete")
	return nil
}
