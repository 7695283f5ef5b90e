package repository

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"time"

	"gorm.io/gorm"
)

type customerRepository struct {
	gormRepository[model.Customer]
}

// NewCustomerRepository returns a GORM backed model.CustomerRepository
func NewCustomerRepository(db *gorm.DB) model.CustomerRepository {
	return &customerRepository{gormRepository[model.Customer]{db: db, entity: "customer"}}
}

func (r *customerRepository) List(ctx context.Context, filter model.CatalogFilter) ([]model.Customer, error) {
	defer prometheus.TrackDBOperation("customer_query")(time.Now())

	query := r.db.WithContext(ctx)
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("name ILIKE ? OR email ILIKE ? OR city ILIKE ?", pattern, pattern, pattern)
	}

	var customers []model.Customer
	if err := query.Order("name").Find(&customers).Error; err != nil {
		return nil, translateError(err)
	}
	return customers, nil
}

func (r *customerRepository) HasOrders(ctx context.Context, id uint) (bool, error) {
	defer prometheus.TrackDBOperation("customer_count")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("customer_id = ?", id).Count(&count).Error
	return count > 0, translateError(err)
}
