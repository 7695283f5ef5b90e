package handler

import (
	"backoffice-service/internal/model"
	"backoffice-service/pkg/slug"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// errInvalidID is returned for a path id that is not a positive integer
var errInvalidID = errors.New("invalid id")

// bindRequest decodes and validates the request body into req
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// fieldMessages collects the field errors carried by err
func fieldMessages(err error) (map[string]string, bool) {
	var many model.FieldErrors
	if errors.As(err, &many) {
		out := make(map[string]string, len(many))
		for _, fe := range many {
			out[fe.Field] = fe.Err.Error()
		}
		return out, true
	}
	var one *model.FieldError
	if errors.As(err, &one) {
		return map[string]string{one.Field: one.Err.Error()}, true
	}
	return nil, false
}

// onlyDuplicates reports whether every field problem is a taken value
func onlyDuplicates(err error) bool {
	var many model.FieldErrors
	if errors.As(err, &many) {
		for _, fe := range many {
			if !errors.Is(fe.Err, model.ErrDuplicate) {
				return false
			}
		}
		return true
	}
	return errors.Is(err, model.ErrDuplicate)
}

// respondError writes the JSON error for err; resource names the record
// in messages like "Brand not found"
func respondError(c echo.Context, log *zap.Logger, err error, resource string) error {
	var validationErrs validator.ValidationErrors
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErrs):
		log.Warn("Request validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "Validation failed",
			"errors": validationMessages(validationErrs),
		})
	case errors.As(err, &httpErr), errors.Is(err, errInvalidID):
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if fields, ok := fieldMessages(err); ok {
		status := http.StatusUnprocessableEntity
		if onlyDuplicates(err) {
			status = http.StatusConflict
		}
		log.Warn(resource+" rejected", zap.Any("errors", fields))
		return c.JSON(status, echo.Map{
			"error":  "Validation failed",
			"errors": fields,
		})
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		log.Warn(resource+" not found", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": resource + " not found"})
	case errors.Is(err, model.ErrOptimisticLock):
		log.Warn(resource+" was modified concurrently", zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{"error": resource + " was modified by someone else, reload and try again"})
	case errors.Is(err, model.ErrInUse):
		log.Warn(resource+" is still referenced", zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{"error": resource + " is still in use"})
	case errors.Is(err, model.ErrDuplicate):
		log.Warn(resource+" violates a unique constraint", zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{"error": resource + " already exists"})
	case errors.Is(err, model.ErrRelationNotFound),
		errors.Is(err, model.ErrInvalidParent),
		errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, slug.ErrEmpty):
		log.Warn(resource+" rejected", zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	log.Error("Request failed", zap.String("resource", resource), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": "Internal server error",
	})
}
