package repository

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"time"

	"gorm.io/gorm"
)

type brandRepository struct {
	gormRepository[model.Brand]
}

// NewBrandRepository returns a GORM backed model.BrandRepository
func NewBrandRepository(db *gorm.DB) model.BrandRepository {
	return &brandRepository{gormRepository[model.Brand]{db: db, entity: "brand"}}
}

func (r *brandRepository) List(ctx context.Context, filter model.CatalogFilter) ([]model.Brand, error) {
	defer prometheus.TrackDBOperation("brand_query")(time.Now())

	query := r.db.WithContext(ctx)
	if filter.Visible != nil {
		query = query.Where("is_visible = ?", *filter.Visible)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("name ILIKE ? OR url ILIKE ?", pattern, pattern)
	}

	var brands []model.Brand
	if err := query.Order("name").Find(&brands).Error; err != nil {
		return nil, translateError(err)
	}
	return brands, nil
}

func (r *brandRepository) HasProducts(ctx context.Context, id uint) (bool, error) {
	defer prometheus.TrackDBOperation("brand_count")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("brand_id = ?", id).Count(&count).Error
	return count > 0, translateError(err)
}
