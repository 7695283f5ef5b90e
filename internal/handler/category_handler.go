package handler

import (
	"backoffice-service/internal/model"
	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var categoryService service.CategoryService

// InitCategoryHandler wires the category handlers to their service
func InitCategoryHandler(svc service.CategoryService) {
	categoryService = svc
}

// ListCategories retrieves all categories with their parent
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	filter := catalogFilter(c, log)
	log.Info("Listing categories", zap.String("search", filter.Search))

	categories, err := categoryService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, log, err, "Category")
	}

	log.Info("Categories retrieved successfully", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a specific category by ID
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Category")
	}
	log.Info("Getting category by ID", zap.Uint("category_id", id))

	category, err := categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Category")
	}

	return c.JSON(http.StatusOK, category)
}

// CreateCategory creates a new category, optionally under a parent
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new category")

	var req service.CategoryInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Category")
	}

	category, err := categoryService.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, log, err, "Category")
	}

	log.Info("Category created successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name),
		zap.String("slug", category.Slug))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory updates an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Category")
	}
	log.Info("Updating category", zap.Uint("category_id", id))

	var req service.CategoryInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Category")
	}

	category, err := categoryService.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, log, err, "Category")
	}

	log.Info("Category updated successfully",
		zap.Uint("category_id", id),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a category without products or children
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Category")
	}
	log.Info("Deleting category", zap.Uint("category_id", id))

	if err := categoryService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, log, err, "Category")
	}

	log.Info("Category deleted successfully", zap.Uint("category_id", id))
	return c.NoContent(http.StatusNoContent)
}

// ListCategoryProducts lists the products linked to a category
func ListCategoryProducts(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Category")
	}

	ctx := c.Request().Context()
	if _, err := categoryService.Get(ctx, id); err != nil {
		return respondError(c, log, err, "Category")
	}

	products, err := productService.List(ctx, model.ProductFilter{CategoryID: &id})
	if err != nil {
		return respondError(c, log, err, "Product")
	}

	log.Info("Category products retrieved", zap.Uint("category_id", id), zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}
