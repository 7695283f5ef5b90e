// Package service holds the back-office use cases on top of the model
// repositories.
package service

import (
	"backoffice-service/internal/model"
	"backoffice-service/pkg/slug"
	"backoffice-service/prometheus"
	"context"
	"errors"
	"fmt"
)

// uniqueField is one column that must not repeat across records
type uniqueField struct {
	field  string
	column string
	value  string
}

// checkUnique collects a FieldError for every taken column
func checkUnique[T any](ctx context.Context, repo model.Repository[T], exceptID uint, fields ...uniqueField) error {
	var errs model.FieldErrors
	for _, f := range fields {
		taken, err := repo.Taken(ctx, f.column, f.value, exceptID)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", f.field, err)
		}
		if taken {
			errs = append(errs, model.NewFieldError(f.field, model.ErrDuplicate))
		}
	}
	return errs.OrNil()
}

// deriveSlug builds the slug of a new catalog record and verifies it is free
func deriveSlug[T any](ctx context.Context, repo model.Repository[T], entity, name string) (string, error) {
	s, err := slug.Make(name)
	if err != nil {
		return "", model.NewFieldError("name", err)
	}

	taken, err := repo.Taken(ctx, "slug", s, 0)
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		prometheus.RecordSlugConflict(entity)
		return "", model.NewFieldError("slug", model.ErrDuplicate)
	}
	return s, nil
}

// joinFieldErrors merges field errors from several checks; any other error wins
func joinFieldErrors(errs ...error) error {
	var out model.FieldErrors
	for _, err := range errs {
		if err == nil {
			continue
		}
		var many model.FieldErrors
		var one *model.FieldError
		switch {
		case errors.As(err, &many):
			out = append(out, many...)
		case errors.As(err, &one):
			out = append(out, one)
		default:
			return err
		}
	}
	return out.OrNil()
}

// relation converts a missing referenced record into a field error
func relation(field string, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return model.NewFieldError(field, model.ErrRelationNotFound)
	}
	return err
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
