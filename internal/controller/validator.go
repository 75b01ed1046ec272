package controller

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	skuPattern   = regexp.MustCompile(`^[a-zA-Z0-9._\-#]+$`)
	pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	hundred      = decimal.NewFromInt(100)
)

// RequestValidator checks the shape of request bodies before they reach the service. Failures
// are reported per field using the same slash separated paths as the service errors.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"objectid": func(fl validator.FieldLevel) bool {
			return primitive.IsValidObjectID(fl.Field().String())
		},
		"sku": func(fl validator.FieldLevel) bool {
			return skuPattern.MatchString(fl.Field().String())
		},
		"price": func(fl validator.FieldLevel) bool {
			return pricePattern.MatchString(fl.Field().String())
		},
		"percent": func(fl validator.FieldLevel) bool {
			percent, err := decimal.NewFromString(fl.Field().String())
			return err == nil && percent.IsPositive() && percent.LessThanOrEqual(hundred)
		},
		"condition": func(fl validator.FieldLevel) bool {
			return domain.Condition(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("registering %s validation: %v", tag, err))
		}
	}

	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make([]errs.FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, errs.FieldError{
			Field:   fieldPath(fieldErr.Namespace()),
			Message: fieldMessage(fieldErr),
		})
	}

	return &errs.ValidationError{Fields: fields}
}

// fieldPath turns "ProductRequest.variants[0].sku" into "variants/0/sku".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}

	replacer := strings.NewReplacer("[", "/", "]", "", ".", "/")
	return replacer.Replace(namespace)
}

func fieldMessage(fieldErr validator.FieldError) string {
	isList := fieldErr.Kind() == reflect.Slice

	switch fieldErr.Tag() {
	case "required":
		return "This field is required!"
	case "min":
		if isList {
			return fmt.Sprintf("Must contain at least %s items!", fieldErr.Param())
		}
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long!", fieldErr.Param())
		}
		return fmt.Sprintf("Must be at least %s!", fieldErr.Param())
	case "max":
		if isList {
			return fmt.Sprintf("Must contain at most %s items!", fieldErr.Param())
		}
		return fmt.Sprintf("Must be at most %s characters long!", fieldErr.Param())
	case "objectid":
		return "Must be a valid id!"
	case "sku":
		return "SKU may only contain letters, numbers and the characters . _ - #"
	case "price":
		return "Must be a number with at most 2 decimal places!"
	case "percent":
		return "Must be greater than 0 and at most 100!"
	case "condition":
		return "Product condition is not supported!"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fieldErr.Param())
	default:
		return "Invalid value!"
	}
}
