package handler

import (
	"backoffice-service/internal/model"
	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var productService service.ProductService

// InitProductHandler wires the product handlers to their service
func InitProductHandler(svc service.ProductService) {
	productService = svc
}

// ListProducts handles retrieving all products with optional filtering
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing products with filters")

	catalog := catalogFilter(c, log)
	filter := model.ProductFilter{Visible: catalog.Visible, Search: catalog.Search}

	// Filter by brand if specified
	if raw := c.QueryParam("brand_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			brandID := uint(id)
			filter.BrandID = &brandID
			log.Info("Filtering products by brand", zap.Uint("brand_id", brandID))
		} else {
			log.Warn("Invalid brand_id parameter", zap.String("value", raw), zap.Error(err))
		}
	}

	// Filter by category if specified
	if raw := c.QueryParam("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
			log.Info("Filtering products by category", zap.Uint("category_id", categoryID))
		} else {
			log.Warn("Invalid category_id parameter", zap.String("value", raw), zap.Error(err))
		}
	}

	products, err := productService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, log, err, "Product")
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// SearchProducts handles the global search over name, slug and description
func SearchProducts(c echo.Context) error {
	log := logger.FromContext(c)
	query := c.QueryParam("q")
	log.Info("Searching products", zap.String("query", query))

	products, err := productService.Search(c.Request().Context(), query)
	if err != nil {
		return respondError(c, log, err, "Product")
	}

	results := make([]SearchResult, 0, len(products))
	for _, p := range products {
		details := map[string]string{"description": p.Description}
		if p.Brand != nil {
			details["brand"] = p.Brand.Name
		}
		results = append(results, SearchResult{ID: p.ID, Title: p.Name, Slug: p.Slug, Details: details})
	}

	return c.JSON(http.StatusOK, results)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Product")
	}
	log.Info("Getting product by ID", zap.Uint("product_id", id))

	product, err := productService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Product")
	}

	log.Info("Product retrieved successfully",
		zap.Uint("product_id", id),
		zap.String("product_name", product.Name),
		zap.String("product_sku", product.SKU))
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new product")

	var req service.ProductInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Product")
	}

	log.Info("Product creation request",
		zap.String("name", req.Name),
		zap.String("sku", req.SKU),
		zap.String("price", req.Price.String()),
		zap.Uint("brand_id", req.BrandID))

	product, err := productService.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, log, err, "Product")
	}

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("slug", product.Slug))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Product")
	}
	log.Info("Updating product", zap.Uint("product_id", id))

	var req service.ProductInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Product")
	}

	product, err := productService.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, log, err, "Product")
	}

	log.Info("Product updated successfully",
		zap.Uint("product_id", id),
		zap.String("name", product.Name),
		zap.String("new_price", product.Price.String()))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product (soft delete)
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Product")
	}
	log.Info("Deleting product", zap.Uint("product_id", id))

	if err := productService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, log, err, "Product")
	}

	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	return c.NoContent(http.StatusNoContent)
}
