package repository

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"time"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository returns a GORM backed model.OrderRepository
func NewOrderRepository(db *gorm.DB) model.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	defer prometheus.TrackDBOperation("order_insert")(time.Now())
	return translateError(r.db.WithContext(ctx).Omit("Customer", "Items.Product").Create(order).Error)
}

func (r *orderRepository) Find(ctx context.Context, id uint) (*model.Order, error) {
	defer prometheus.TrackDBOperation("order_query")(time.Now())

	var order model.Order
	err := r.withItems(r.db.WithContext(ctx)).
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	defer prometheus.TrackDBOperation("order_query")(time.Now())

	query := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = r.withItems(query).Order("created_at DESC, id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return orders, total, nil
}

// Update runs the version check and the item replacement in one transaction
func (r *orderRepository) Update(ctx context.Context, order *model.Order, expectedVersion int) error {
	defer prometheus.TrackDBOperation("order_update")(time.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("id = ? AND version = ?", order.ID, expectedVersion).
			Updates(map[string]interface{}{
				"customer_id":    order.CustomerID,
				"status":         order.Status,
				"shipping_price": order.ShippingPrice,
				"notes":          order.Notes,
				"version":        expectedVersion + 1,
				"updated_at":     time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return model.ErrNotFound
			}
			return model.ErrOptimisticLock
		}

		keep := make([]uint, 0, len(order.Items))
		for _, item := range order.Items {
			if item.ID != 0 {
				keep = append(keep, item.ID)
			}
		}
		stale := tx.Where("order_id = ?", order.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Omit("Product").Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translateError(err)
	}

	order.Version = expectedVersion + 1
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("order_delete")(time.Now())
	result := r.db.WithContext(ctx).Delete(&model.Order{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *orderRepository) NumberTaken(ctx context.Context, number string) (bool, error) {
	defer prometheus.TrackDBOperation("order_count")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Order{}).Where("number = ?", number).Count(&count).Error
	return count > 0, translateError(err)
}

func (r *orderRepository) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	defer prometheus.TrackDBOperation("order_count")(time.Now())

	var rows []model.StatusCount
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *orderRepository) CountWithStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	defer prometheus.TrackDBOperation("order_count")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("status = ?", status).Count(&count).Error
	return count, translateError(err)
}

func (r *orderRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position, id")
		})
}
