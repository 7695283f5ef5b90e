package repository

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"time"

	"gorm.io/gorm"
)

type productRepository struct {
	gormRepository[model.Product]
}

// NewProductRepository returns a GORM backed model.ProductRepository
func NewProductRepository(db *gorm.DB) model.ProductRepository {
	return &productRepository{gormRepository[model.Product]{db: db, entity: "product"}}
}

// Create links the given categories without upserting them
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	defer prometheus.TrackDBOperation("product_insert")(time.Now())
	return translateError(r.db.WithContext(ctx).Omit("Brand", "Categories.*").Create(product).Error)
}

// Update saves the product columns and replaces its category links
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	defer prometheus.TrackDBOperation("product_update")(time.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Brand", "Categories").Save(product).Error; err != nil {
			return err
		}
		return tx.Model(product).Omit("Categories.*").Association("Categories").Replace(product.Categories)
	})
	return translateError(err)
}

func (r *productRepository) Find(ctx context.Context, id uint) (*model.Product, error) {
	defer prometheus.TrackDBOperation("product_query")(time.Now())
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Categories").
		First(&product, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	defer prometheus.TrackDBOperation("product_query")(time.Now())

	query := r.db.WithContext(ctx).Preload("Brand")
	if filter.Visible != nil {
		query = query.Where("is_visible = ?", *filter.Visible)
	}
	if filter.BrandID != nil {
		query = query.Where("brand_id = ?", *filter.BrandID)
	}
	if filter.CategoryID != nil {
		links := r.db.Table("category_product").Select("product_id").Where("category_id = ?", *filter.CategoryID)
		query = query.Where("id IN (?)", links)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("name ILIKE ? OR slug ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	var products []model.Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		return nil, translateError(err)
	}
	return products, nil
}

func (r *productRepository) FindMany(ctx context.Context, ids []uint) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	defer prometheus.TrackDBOperation("product_query")(time.Now())

	var products []model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, translateError(err)
	}
	return products, nil
}

func (r *productRepository) CreatedBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	defer prometheus.TrackDBOperation("product_query")(time.Now())

	var createdAt []time.Time
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Pluck("created_at", &createdAt).Error
	if err != nil {
		return nil, translateError(err)
	}
	return createdAt, nil
}
