package handler

import (
	"backoffice-service/internal/model"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	priceFormat = regexp.MustCompile(`^\d{1,6}(\.\d{0,2})?$`)
	// money columns are decimal(10,2)
	moneyFormat = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)
)

// RequestValidator plugs go-playground/validator into echo
type RequestValidator struct {
	validate *validator.Validate
}

// NewValidator returns the validator used for every request body
func NewValidator() *RequestValidator {
	v := validator.New()

	// Report fields under their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Money is validated in its decimal string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return priceFormat.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return moneyFormat.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return model.OrderStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("product_type", func(fl validator.FieldLevel) bool {
		return model.ProductType(fl.Field().String()).Valid()
	})

	return &RequestValidator{validate: v}
}

// Validate implements echo.Validator
func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

// validationMessages flattens validator errors into field -> message
func validationMessages(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		// Namespace starts with the Go name of the request struct
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out[field] = validationMessage(fe)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "price":
		return "must have at most 6 integer and 2 decimal digits"
	case "money":
		return "must be a non-negative amount with at most 8 integer and 2 decimal digits"
	case "hexcolor":
		return "must be a hex color like #1a2b3c"
	case "order_status":
		return "must be one of pending, processing, completed, declined"
	case "product_type":
		return "must be downloadable or deliverable"
	}
	return "is invalid"
}
