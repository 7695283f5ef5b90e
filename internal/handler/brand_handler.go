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

var brandService service.BrandService

// InitBrandHandler wires the brand handlers to their service
func InitBrandHandler(svc service.BrandService) {
	brandService = svc
}

// catalogFilter reads the visibility and search query parameters
func catalogFilter(c echo.Context, log *zap.Logger) model.CatalogFilter {
	filter := model.CatalogFilter{Search: c.QueryParam("search")}
	if raw := c.QueryParam("is_visible"); raw != "" {
		visible, err := strconv.ParseBool(raw)
		if err == nil {
			filter.Visible = &visible
		} else {
			log.Warn("Invalid is_visible parameter", zap.String("value", raw), zap.Error(err))
		}
	}
	return filter
}

// ListBrands handles retrieving brands with optional filtering
func ListBrands(c echo.Context) error {
	log := logger.FromContext(c)
	filter := catalogFilter(c, log)
	log.Info("Listing brands", zap.String("search", filter.Search))

	brands, err := brandService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, log, err, "Brand")
	}

	log.Info("Brands retrieved successfully", zap.Int("count", len(brands)))
	return c.JSON(http.StatusOK, brands)
}

// GetBrand handles retrieving a single brand by ID
func GetBrand(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Brand")
	}
	log.Info("Getting brand by ID", zap.Uint("brand_id", id))

	brand, err := brandService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Brand")
	}

	return c.JSON(http.StatusOK, brand)
}

// CreateBrand handles creating a new brand
func CreateBrand(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new brand")

	var req service.BrandInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Brand")
	}

	brand, err := brandService.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, log, err, "Brand")
	}

	log.Info("Brand created successfully",
		zap.Uint("brand_id", brand.ID),
		zap.String("name", brand.Name),
		zap.String("slug", brand.Slug))
	return c.JSON(http.StatusCreated, brand)
}

// UpdateBrand handles updating an existing brand; the slug is left untouched
func UpdateBrand(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Brand")
	}
	log.Info("Updating brand", zap.Uint("brand_id", id))

	var req service.BrandInput
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, log, err, "Brand")
	}

	brand, err := brandService.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, log, err, "Brand")
	}

	log.Info("Brand updated successfully",
		zap.Uint("brand_id", id),
		zap.String("name", brand.Name))
	return c.JSON(http.StatusOK, brand)
}

// DeleteBrand handles deleting a brand (soft delete)
func DeleteBrand(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Brand")
	}
	log.Info("Deleting brand", zap.Uint("brand_id", id))

	if err := brandService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, log, err, "Brand")
	}

	log.Info("Brand deleted successfully", zap.Uint("brand_id", id))
	return c.NoContent(http.StatusNoContent)
}

// ListBrandProducts handles listing the products of one brand
func ListBrandProducts(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err, "Brand")
	}

	ctx := c.Request().Context()
	if _, err := brandService.Get(ctx, id); err != nil {
		return respondError(c, log, err, "Brand")
	}

	products, err := productService.List(ctx, model.ProductFilter{BrandID: &id})
	if err != nil {
		return respondError(c, log, err, "Product")
	}

	log.Info("Brand products retrieved", zap.Uint("brand_id", id), zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}
