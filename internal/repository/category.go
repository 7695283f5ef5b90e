package repository

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"time"

	"gorm.io/gorm"
)

type categoryRepository struct {
	gormRepository[model.Category]
}

// NewCategoryRepository returns a GORM backed model.CategoryRepository
func NewCategoryRepository(db *gorm.DB) model.CategoryRepository {
	return &categoryRepository{gormRepository[model.Category]{db: db, entity: "category"}}
}

func (r *categoryRepository) Find(ctx context.Context, id uint) (*model.Category, error) {
	defer prometheus.TrackDBOperation("category_query")(time.Now())
	var category model.Category
	if err := r.db.WithContext(ctx).Preload("Parent").First(&category, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

// Update never cascades into the preloaded parent
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	defer prometheus.TrackDBOperation("category_update")(time.Now())
	return translateError(r.db.WithContext(ctx).Omit("Parent").Save(category).Error)
}

func (r *categoryRepository) List(ctx context.Context, filter model.CatalogFilter) ([]model.Category, error) {
	defer prometheus.TrackDBOperation("category_query")(time.Now())

	query := r.db.WithContext(ctx).Preload("Parent")
	if filter.Visible != nil {
		query = query.Where("is_visible = ?", *filter.Visible)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", likePattern(filter.Search))
	}

	var categories []model.Category
	if err := query.Order("name").Find(&categories).Error; err != nil {
		return nil, translateError(err)
	}
	return categories, nil
}

func (r *categoryRepository) FindMany(ctx context.Context, ids []uint) ([]model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	defer prometheus.TrackDBOperation("category_query")(time.Now())

	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, translateError(err)
	}
	return categories, nil
}

func (r *categoryRepository) HasProducts(ctx context.Context, id uint) (bool, error) {
	defer prometheus.TrackDBOperation("category_count")(time.Now())
	var count int64
	db := r.db.WithContext(ctx)
	linked := db.Table("category_product").Select("product_id").Where("category_id = ?", id)
	// soft deleted products keep their links
	err := db.Model(&model.Product{}).Where("id IN (?)", linked).Count(&count).Error
	return count > 0, translateError(err)
}

func (r *categoryRepository) HasChildren(ctx context.Context, id uint) (bool, error) {
	defer prometheus.TrackDBOperation("category_count")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("parent_id = ?", id).Count(&count).Error
	return count > 0, translateError(err)
}
