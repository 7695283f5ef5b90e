// Package repository implements the model repositories on top of GORM.
package repository

import (
	"backoffice-service/internal/model"
	"backoffice-service/prometheus"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// gormRepository carries the operations every catalog entity shares
type gormRepository[T any] struct {
	db     *gorm.DB
	entity string
}

func (r *gormRepository[T]) Create(ctx context.Context, record *T) error {
	defer prometheus.TrackDBOperation(r.entity + "_insert")(time.Now())
	return translateError(r.db.WithContext(ctx).Create(record).Error)
}

func (r *gormRepository[T]) Update(ctx context.Context, record *T) error {
	defer prometheus.TrackDBOperation(r.entity + "_update")(time.Now())
	return translateError(r.db.WithContext(ctx).Save(record).Error)
}

func (r *gormRepository[T]) Find(ctx context.Context, id uint) (*T, error) {
	defer prometheus.TrackDBOperation(r.entity + "_query")(time.Now())
	var record T
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

func (r *gormRepository[T]) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation(r.entity + "_delete")(time.Now())
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormRepository[T]) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackDBOperation(r.entity + "_count")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, translateError(err)
}

// Taken looks at soft-deleted rows too, the unique indexes do as well
func (r *gormRepository[T]) Taken(ctx context.Context, column, value string, exceptID uint) (bool, error) {
	defer prometheus.TrackDBOperation(r.entity + "_count")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(new(T)).
		Where(column+" = ? AND id <> ?", value, exceptID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// translateError maps GORM sentinels onto the model ones
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return model.ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return model.ErrRelationNotFound
	}
	return err
}

func likePattern(search string) string {
	return "%" + search + "%"
}
